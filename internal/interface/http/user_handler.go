package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sosmed-api/internal/application"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/response"
	"sosmed-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateUserRequest struct {
	Fullname        string  `json:"fullname" binding:"required,min=3"`
	Username        string  `json:"username" binding:"required,min=3"`
	Bio             *string `json:"bio" binding:"omitempty,max=160"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" binding:"omitempty,min=6"`
}

// GetByUsername GET /api/user/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.Svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeDomainError(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, u.Profile(), "Success")
}

// Search GET /api/user/search?username=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("username")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "Username is required", nil)
		return
	}

	users, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		writeDomainError(c, h.Logger, err, "")
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		results = append(results, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"fullname": u.Fullname,
			"image":    u.Image,
		})
	}
	response.Success(c, http.StatusOK, results, "Success")
}

// Update PUT /api/user/update-user
func (h *UserHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToFieldErrors(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Fullname:        req.Fullname,
		Username:        req.Username,
		Bio:             req.Bio,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeDomainError(c, h.Logger, err, "Username already taken")
		return
	}

	response.Success(c, http.StatusOK, u.Profile(), "Profile updated successfully")
}

// Only raster image uploads are accepted as profile photos.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// UpdatePhoto PUT /api/user/update-photo-user
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image file is required", nil)
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		response.Error(c, http.StatusBadRequest, "Only images are allowed", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeDomainError(c, h.Logger, err, "")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UpdatePhoto(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeDomainError(c, h.Logger, err, "")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image": url}, "Photo updated successfully")
}
