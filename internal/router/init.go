package router

import (
	"sosmed-api/internal/application"
	"sosmed-api/internal/container"
	pginfra "sosmed-api/internal/infrastructure/postgres"
	handlers "sosmed-api/internal/interface/http"
	"sosmed-api/internal/router/modules"
)

// InitModules builds the service graph from the container singletons and
// registers every feature module with the router registry. Called once
// during startup.
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())
	follows := pginfra.NewFollowRepository(container.GetPGPool())

	service := application.NewService(
		users,
		follows,
		container.GetJWT(),
		container.GetGCS(),
		container.GetConfig().GCSBucket,
		container.GetLogger(),
	)

	authHandler := handlers.NewAuthHandler(service, container.GetLogger())
	userHandler := handlers.NewUserHandler(service, container.GetLogger())
	followHandler := handlers.NewFollowHandler(service, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, users, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, users, container.GetJWT()))
	r.Add(modules.NewFollowModule(followHandler, users, container.GetJWT()))
}
