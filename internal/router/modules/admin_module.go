package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
	handlers "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/http"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/middleware"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
)

// AdminModule wires the administrative routes, all gated on the Admin
// role claim: GET /api/users, GET /api/users/search, DELETE /api/users/:id.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Tokens  *helpers.TokenManager
}

func NewAdminModule(h *handlers.AdminHandler, tokens *helpers.TokenManager) *AdminModule {
	return &AdminModule{Handler: h, Tokens: tokens}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.Tokens), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/users", m.Handler.List)
		admin.GET("/users/search", m.Handler.Search)
		admin.DELETE("/users/:id", m.Handler.Delete)
	}
}
