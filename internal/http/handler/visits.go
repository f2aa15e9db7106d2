package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/service"
	"go.uber.org/zap"
)

// VisitsHandler provides the HTTP handlers for the visit resource.
//
// Supported operations:
//   - GET  /visits/{id}  → Retrieve a visit by ID
//   - POST /visits/new   → Create a new visit
//   - POST /visits/{id}  → Partially update a visit
type VisitsHandler struct {
	log *zap.Logger
	svc *service.TravelService
}

// NewVisitsHandler constructs a VisitsHandler instance.
func NewVisitsHandler(log *zap.Logger, svc *service.TravelService) *VisitsHandler {
	return &VisitsHandler{log: log.Named("visits"), svc: svc}
}

// GetVisit handles GET /visits/{id}.
//
// Status Codes:
//   - 200 OK → JSON of visit
//   - 404 Not Found → Visit not found
func (h *VisitsHandler) GetVisit(c *gin.Context) {
	v, err := h.svc.GetVisit(entityID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// CreateVisit handles POST /visits/new.
//
// Behavior:
//   - Every field is required; explicit null or an absent key rejects.
//   - The referenced user and location must exist.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body, missing field, duplicate ID, or
//     nonexistent reference
func (h *VisitsHandler) CreateVisit(c *gin.Context) {
	var req travel.VisitCreate
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	v, err := req.ToVisit()
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.CreateVisit(v); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// UpdateVisit handles POST /visits/{id}.
//
// Behavior:
//   - Overlays the provided fields onto the stored visit and reconciles the
//     derived indexes.
//   - Check order: body shape, then explicit nulls, then references, then
//     visit existence. A patch naming an absent user or location is 400 even
//     when the visit itself is unknown.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body, explicit null, or nonexistent reference
//   - 404 Not Found → Visit not found
func (h *VisitsHandler) UpdateVisit(c *gin.Context) {
	var req travel.VisitPatch
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.UpdateVisit(entityID(c), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
