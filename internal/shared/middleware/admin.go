package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/response"
)

// AdminMiddleware gates a route on the admin role. It reads the role set
// by AuthMiddleware, so it must run after it.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != user.RoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
