package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/response"
)

const (
	CtxAccountIDKey = "accountID"
	CtxRoleKey      = "accountRole"
)

// Auth validates the bearer session token and injects the caller's
// account id and role into the Gin context. Handlers never read the
// account id from the request body.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
