package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. Only the bulk sync POST carries a
// body, so bodiless methods pass straight through. A non-positive limit
// disables the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	tooLarge := dto.NewErrorResponse(dto.ErrCodeTooLarge,
		fmt.Sprintf("request body exceeds %d bytes", maxBytes))

	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		// chunked bodies fail on read once the cap is hit
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
