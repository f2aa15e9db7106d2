package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/store"
	"github.com/hlcup17/travels/pkg/jsonx"
)

//
// ----- Helpers -----

// entityID extracts :id (already shape-checked by middleware). Digit strings
// overflowing int32 resolve to a sentinel no record carries, so the caller's
// lookup simply misses.
func entityID(c *gin.Context) int32 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return -1
	}
	return int32(id)
}

// bind decodes the request body into obj; see jsonx.ParseJSONBody for the
// accepted shapes.
func bind[T any](c *gin.Context, obj *T) error {
	if c.Request == nil || c.Request.Body == nil {
		return errors.New("invalid request")
	}
	return jsonx.ParseJSONBody(c.Request, obj)
}

// badRequest records err and answers 400 with an empty body.
func badRequest(c *gin.Context, err error) {
	c.Error(err)
	c.Status(http.StatusBadRequest)
}

// writeError records err and maps it to the wire: unknown IDs are 404,
// anything else a write rejects is 400. Bodies stay empty.
func writeError(c *gin.Context, err error) {
	c.Error(err)
	if errors.Is(err, store.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusBadRequest)
}
