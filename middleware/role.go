package middleware

import (
	"net/http"

	"busbook/models"

	"github.com/gin-gonic/gin"
)

// Authorize restricts a route to the listed roles. It must run after
// JWTAuthMiddleware, which sets the role in the request context.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			return
		}
		role, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			return
		}
		for _, allowed := range roles {
			if models.Role(role) == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied."})
	}
}
