package middleware

import (
	"net/http"

	"nestview/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route to callers with the given role. Must run after
// JWTAuth. Resource-level ownership stays with the services; this only
// rejects callers whose role can never perform the operation.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
