package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint speaks. Token is only present
// on register/login; Errors carries field-level validation messages.
type APIResponse[T any] struct {
	Status    int                 `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	RequestID string              `json:"request_id,omitempty"`
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Token     string              `json:"token,omitempty"`
	Data      T                   `json:"data,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

// Success writes a successful envelope to the response.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

// Token writes a successful envelope carrying a session token.
func Token[T any](ctx *gin.Context, status int, token string, data T, message string) {
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Token:     token,
		Data:      data,
	})
}

// Error writes a failure envelope. errs may be nil when there is no
// field-level detail to report.
func Error(ctx *gin.Context, status int, message string, errs map[string][]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Errors:    errs,
	})
}

// AbortError writes a failure envelope and stops the handler chain.
// For use from middleware.
func AbortError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
	})
}
