package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sosmed-api/internal/domain/entity"
	repo "sosmed-api/internal/domain/repository"
	"sosmed-api/pkg/helpers"
	"sosmed-api/pkg/response"
)

const (
	// CtxUserIDKey holds the authenticated user id.
	CtxUserIDKey = "userID"
	// CtxUserKey holds the sanitized identity projection.
	CtxUserKey = "currentUser"
)

// Auth validates the bearer token and resolves it to a live user record.
// Every failure mode after the missing-header case gets the same uniform
// message, including a valid token whose subject was deleted after issuance.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized, token not found")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Something went wrong")
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Something went wrong")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.AbortError(c, http.StatusUnauthorized, "Something went wrong")
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u.Profile())
		c.Next()
	}
}

// CurrentUser returns the identity projection the guard attached.
func CurrentUser(c *gin.Context) (entity.Profile, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return entity.Profile{}, false
	}
	p, ok := v.(entity.Profile)
	return p, ok
}
