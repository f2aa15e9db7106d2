package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/service"
	"go.uber.org/zap"
)

// UsersHandler provides the HTTP handlers for the user resource.
//
// Supported operations:
//   - GET  /users/{id}         → Retrieve a user by ID
//   - GET  /users/{id}/visits  → The user's visits, filtered, in time order
//   - POST /users/new          → Create a new user
//   - POST /users/{id}         → Partially update a user
type UsersHandler struct {
	log *zap.Logger
	svc *service.TravelService
}

// NewUsersHandler constructs a UsersHandler instance.
func NewUsersHandler(log *zap.Logger, svc *service.TravelService) *UsersHandler {
	return &UsersHandler{log: log.Named("users"), svc: svc}
}

// GetUser handles GET /users/{id}.
//
// Status Codes:
//   - 200 OK → JSON of user
//   - 404 Not Found → User not found
func (h *UsersHandler) GetUser(c *gin.Context) {
	u, err := h.svc.GetUser(entityID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetUserVisits handles GET /users/{id}/visits.
//
// Behavior:
//   - Projects the user's visit rows passing every filter, ordered by
//     visited_at.
//   - Recognized filters: fromDate, toDate, country, toDistance. Unrecognized
//     keys are ignored.
//
// Status Codes:
//   - 200 OK → {"visits": [...]}
//   - 400 Bad Request → Recognized filter fails to parse
//   - 404 Not Found → User not found (wins over a bad filter)
func (h *UsersHandler) GetUserVisits(c *gin.Context) {
	views, err := h.svc.UserVisits(entityID(c), c.Request.URL.RawQuery)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": views})
}

// CreateUser handles POST /users/new.
//
// Behavior:
//   - Every field is required; explicit null or an absent key rejects.
//   - Unknown keys are dropped.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body, missing field, or duplicate ID
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req travel.UserCreate
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := req.ToUser()
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.CreateUser(u); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// UpdateUser handles POST /users/{id}.
//
// Behavior:
//   - Overlays the provided fields onto the stored user (merge-patch style);
//     "id" in the body, like any unknown key, is ignored.
//   - Body validity is checked before existence: a malformed body is 400
//     even when the user is unknown.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body or explicit null
//   - 404 Not Found → User not found
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req travel.UserPatch
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.UpdateUser(entityID(c), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
