package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/response"
)

// RequireRole gates a route group on the role claim set by Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != string(role) {
			response.Error(c, http.StatusForbidden, "insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
