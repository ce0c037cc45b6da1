package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hrdesk/internal/domain"
	"hrdesk/internal/service"
)

const (
	ContextKeyIdentity   = "identity_key"
	ContextKeyEmployeeID = "employee_id"
)

// AuthMiddleware returns Gin middleware that validates session tokens and
// injects the acting user into the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		actor, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired session token"},
			})
			return
		}

		c.Set(ContextKeyIdentity, actor.IdentityKey)
		c.Set(ContextKeyEmployeeID, actor.EmployeeID)
		c.Next()
	}
}

// GetActor extracts the acting user from the Gin context.
func GetActor(c *gin.Context) (domain.ActingUser, error) {
	identity, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return domain.ActingUser{}, domain.ErrUnauthorized
	}
	employeeID, _ := c.Get(ContextKeyEmployeeID)
	actor := domain.ActingUser{IdentityKey: identity.(string)}
	if s, ok := employeeID.(string); ok {
		actor.EmployeeID = s
	}
	return actor, nil
}
