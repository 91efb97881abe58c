package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the request ID on both requests and responses.
const Header = "X-Request-ID"

const ctxKey = "request_id"

// Middleware tags every request with an ID. A caller-supplied X-Request-ID
// is kept as-is so operator tooling can trace its own calls through the logs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request ID assigned by Middleware, or "" outside of it.
func Value(c *gin.Context) string {
	if v, exists := c.Get(ctxKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
