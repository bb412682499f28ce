package middleware

import (
	"github.com/gin-gonic/gin"
)

// ClientIPMiddleware stores the resolved client IP on the context so domain
// code (view-count recording) does not reach into the request directly.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", c.ClientIP())
		c.Next()
	}
}
