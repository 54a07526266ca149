package modules

import (
	"github.com/gin-gonic/gin"

	repo "sosmed-api/internal/domain/repository"
	handlers "sosmed-api/internal/interface/http"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/helpers"
)

// FollowModule wires the follow edge creation route.
// Protected: POST /api/follow/:username
type FollowModule struct {
	Handler *handlers.FollowHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewFollowModule(h *handlers.FollowHandler, users repo.UserRepository, jwt *helpers.JWTManager) *FollowModule {
	return &FollowModule{Handler: h, Users: users, JWT: jwt}
}

func (m *FollowModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.POST("/follow/:username", m.Handler.Follow)
	}
}
