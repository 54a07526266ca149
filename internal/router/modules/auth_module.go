package modules

import (
	"github.com/gin-gonic/gin"

	repo "sosmed-api/internal/domain/repository"
	handlers "sosmed-api/internal/interface/http"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/helpers"
)

// AuthModule wires registration, login, and the authenticated identity
// endpoint.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
