package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sosmed-api/internal/application"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/response"
)

type FollowHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewFollowHandler(svc *application.Service, logger *logrus.Logger) *FollowHandler {
	return &FollowHandler{Svc: svc, Logger: logger}
}

// Follow POST /api/follow/:username
func (h *FollowHandler) Follow(c *gin.Context) {
	followerID := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.Follow(c.Request.Context(), followerID, c.Param("username")); err != nil {
		writeDomainError(c, h.Logger, err, "")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Successfully followed the user")
}
