package modules

import (
	"github.com/gin-gonic/gin"

	repo "sosmed-api/internal/domain/repository"
	handlers "sosmed-api/internal/interface/http"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/helpers"
)

// UserModule wires profile retrieval, search, and update routes.
// Public: GET /api/user/search, GET /api/user/:username
// Protected: PUT /api/user/update-user, PUT /api/user/update-photo-user
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// static /user/search sits alongside the :username param route; gin
	// matches the static segment first
	rg.GET("/user/search", m.Handler.Search)
	rg.GET("/user/:username", m.Handler.GetByUsername)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.PUT("/user/update-user", m.Handler.Update)
		auth.PUT("/user/update-photo-user", m.Handler.UpdatePhoto)
	}
}
