package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/service"
	"go.uber.org/zap"
)

// LocationsHandler provides the HTTP handlers for the location resource.
//
// Supported operations:
//   - GET  /locations/{id}      → Retrieve a location by ID
//   - GET  /locations/{id}/avg  → Mean visit mark, filtered
//   - POST /locations/new       → Create a new location
//   - POST /locations/{id}      → Partially update a location
type LocationsHandler struct {
	log *zap.Logger
	svc *service.TravelService
}

// NewLocationsHandler constructs a LocationsHandler instance.
func NewLocationsHandler(log *zap.Logger, svc *service.TravelService) *LocationsHandler {
	return &LocationsHandler{log: log.Named("locations"), svc: svc}
}

// GetLocation handles GET /locations/{id}.
//
// Status Codes:
//   - 200 OK → JSON of location
//   - 404 Not Found → Location not found
func (h *LocationsHandler) GetLocation(c *gin.Context) {
	loc, err := h.svc.GetLocation(entityID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// GetLocationAvg handles GET /locations/{id}/avg.
//
// Behavior:
//   - Averages the marks of the location's visits passing every filter.
//   - Recognized filters: fromDate, toDate, fromAge, toAge, gender.
//     Unrecognized keys are ignored.
//   - The mean is rendered as a raw JSON number: up to five fractional
//     digits, trailing zeros stripped, 0 for an empty subset.
//
// Status Codes:
//   - 200 OK → {"avg": <number>}
//   - 400 Bad Request → Recognized filter fails to parse
//   - 404 Not Found → Location not found (wins over a bad filter)
func (h *LocationsHandler) GetLocationAvg(c *gin.Context) {
	avg, err := h.svc.LocationAvg(entityID(c), c.Request.URL.RawQuery)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avg": json.RawMessage(avg)})
}

// CreateLocation handles POST /locations/new.
//
// Behavior:
//   - Every field is required; explicit null or an absent key rejects.
//   - Unknown keys are dropped.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body, missing field, or duplicate ID
func (h *LocationsHandler) CreateLocation(c *gin.Context) {
	var req travel.LocationCreate
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	loc, err := req.ToLocation()
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.CreateLocation(loc); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// UpdateLocation handles POST /locations/{id}.
//
// Behavior:
//   - Overlays the provided fields onto the stored location (merge-patch
//     style); "id" in the body, like any unknown key, is ignored.
//   - Body validity is checked before existence.
//
// Status Codes:
//   - 200 OK → {}
//   - 400 Bad Request → Malformed body or explicit null
//   - 404 Not Found → Location not found
func (h *LocationsHandler) UpdateLocation(c *gin.Context) {
	var req travel.LocationPatch
	if err := bind(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.UpdateLocation(entityID(c), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
