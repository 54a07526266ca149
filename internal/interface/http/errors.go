package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sosmed-api/internal/application"
	repo "sosmed-api/internal/domain/repository"
	"sosmed-api/pkg/helpers"
	"sosmed-api/pkg/response"
)

// duplicateMessages are the per-field wire messages for unique collisions.
var duplicateMessages = map[string]string{
	"email":    "Email already registered",
	"username": "Username already taken",
}

// writeDomainError translates service errors into the response envelope.
// Anything outside the domain taxonomy is logged in full and reported as an
// opaque 500.
func writeDomainError(c *gin.Context, logger *logrus.Logger, err error, failMsg string) {
	var fieldErrs application.FieldErrors
	var dup *repo.DuplicateError

	switch {
	case errors.As(err, &fieldErrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	case errors.As(err, &dup):
		response.Error(c, http.StatusBadRequest, failMsg, map[string][]string{
			dup.Field: {duplicateMessages[dup.Field]},
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, application.ErrSelfFollow):
		response.Error(c, http.StatusBadRequest, "You cannot follow yourself", nil)
	case errors.Is(err, application.ErrAlreadyFollowing):
		response.Error(c, http.StatusBadRequest, "You are already following this user", nil)
	default:
		if logger != nil {
			helpers.LogError(logger, "internal error", err, logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			})
		}
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
