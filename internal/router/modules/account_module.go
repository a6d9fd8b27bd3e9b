package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/http"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/middleware"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
)

// AccountModule wires the self-service account routes.
// Public: POST /api/users/register, POST /api/users/login,
// POST /api/users/verify-email.
// Protected: GET/PUT /api/users/profile, POST /api/users/profile/picture.
type AccountModule struct {
	Handler *handlers.AccountHandler
	Tokens  *helpers.TokenManager
}

func NewAccountModule(h *handlers.AccountHandler, tokens *helpers.TokenManager) *AccountModule {
	return &AccountModule{Handler: h, Tokens: tokens}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users/register", m.Handler.Register)
	rg.POST("/users/login", m.Handler.Login)
	rg.POST("/users/verify-email", m.Handler.VerifyEmail)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/users/profile", m.Handler.GetProfile)
		auth.PUT("/users/profile", m.Handler.UpdateProfile)
		auth.POST("/users/profile/picture", m.Handler.UploadPicture)
	}
}
