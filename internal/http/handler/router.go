package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/http/middleware"
	"github.com/hlcup17/travels/internal/service"
	"go.uber.org/zap"
)

// NewRouter assembles the Gin engine serving the travels API: recovery,
// identity headers, request correlation, access logging, and the route table.
// The static "new" routes coexist with the :id parameter routes; Gin resolves
// static segments first, so POST /users/new creates while POST /users/7
// updates.
//
// maxInFlight > 0 inserts the concurrency gate; 0 serves unbounded.
func NewRouter(log *zap.Logger, svc *service.TravelService, maxInFlight int64) *gin.Engine {
	r := gin.New()

	// A trailing slash never names an entity here; the default 301 rewrite
	// would leak a status the API never answers.
	r.RedirectTrailingSlash = false

	// Register middleware
	{
		r.Use(gin.Recovery())               // Panic recovery
		r.Use(middleware.Identity())        // Server + Content-Type headers
		r.Use(middleware.RequestID())       // Request correlation
		r.Use(middleware.AccessLog(log.Named("http"))) // Observability

		// Admission runs after correlation so queue waits show up in the
		// access log.
		if maxInFlight > 0 {
			r.Use(middleware.LimitConcurrency(maxInFlight))
		}

		// Anything unrouted answers 404 with an empty body, replacing Gin's
		// default text page. Unsupported methods fall through here too.
		r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })
	}

	// Register route handlers
	{
		requireID := middleware.RequireEntityID()

		{
			h := NewUsersHandler(log, svc)
			r.POST("/users/new", h.CreateUser)                        // create one
			r.GET("/users/:id", requireID, h.GetUser)                 // get one
			r.POST("/users/:id", requireID, h.UpdateUser)             // update one (partial)
			r.GET("/users/:id/visits", requireID, h.GetUserVisits)    // visits projection
		}
		{
			h := NewLocationsHandler(log, svc)
			r.POST("/locations/new", h.CreateLocation)                // create one
			r.GET("/locations/:id", requireID, h.GetLocation)         // get one
			r.POST("/locations/:id", requireID, h.UpdateLocation)     // update one (partial)
			r.GET("/locations/:id/avg", requireID, h.GetLocationAvg)  // marks average
		}
		{
			h := NewVisitsHandler(log, svc)
			r.POST("/visits/new", h.CreateVisit)                      // create one
			r.GET("/visits/:id", requireID, h.GetVisit)               // get one
			r.POST("/visits/:id", requireID, h.UpdateVisit)           // update one (partial)
		}
	}

	return r
}
