// Package middleware carries the cross-cutting gin middleware of the HTTP
// interface.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request identifier header, propagated when the
// caller supplies one and generated otherwise.
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestID attaches a request identifier to the context and echoes it on
// the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request identifier set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
