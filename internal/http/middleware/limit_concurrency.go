package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// LimitConcurrency bounds the number of requests handled at once. Excess
// requests queue instead of being shed: every client that stays connected
// gets a real answer, which matters for an API whose only statuses are
// 200, 400 and 404.
//
// Example usage:
//
//	router.Use(LimitConcurrency(256)) // at most 256 requests in flight
func LimitConcurrency(maxInFlight int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(maxInFlight)

	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			// Acquire only fails once the client has gone away; nobody
			// receives this status.
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
