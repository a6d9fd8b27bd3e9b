package router

import (
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/application"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/container"
	pginfra "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/infrastructure/postgres"
	handlers "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/interface/http"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/router/modules"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
)

// InitModules builds the identity service from the container singletons
// and registers the account and admin modules. Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewAccountRepository(container.GetPGPool())

	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	svc := application.NewService(
		repo,
		container.GetTokens(),
		helpers.NewRedisVerificationStore(container.GetRedis()),
		cfg.VerifyTokenTTL,
		cfg.VerifyEmailURL,
		pub,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESAccountsIndex,
		container.GetLogger(),
	)

	accountHandler := handlers.NewAccountHandler(svc, container.GetLogger())
	adminHandler := handlers.NewAdminHandler(svc, container.GetLogger())

	r.Add(modules.NewAccountModule(accountHandler, container.GetTokens()))
	r.Add(modules.NewAdminModule(adminHandler, container.GetTokens()))
}
