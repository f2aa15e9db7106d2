package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireEntityID ensures the path param ":id" is all digits, the only shape
// under which the route names an entity at all. Anything else (letters, a
// sign, an empty segment) is a routing miss and answers 404 with an empty
// body before the handler runs.
//
// Digit strings overflowing int32 pass through: the handlers resolve those to
// a sentinel ID no record carries, so body validation still runs first on
// writes and the lookup misses afterwards.
func RequireEntityID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !isDigits(id) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
