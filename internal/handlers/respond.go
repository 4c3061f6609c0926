package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-agent/internal/middleware"
	"github.com/justsurfingit/job-agent/internal/services"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	slog.Warn("http.error",
		"status", status,
		"code", code,
		"message", message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.RequestIDFromContext(c),
	)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, services.ErrIndexOutOfRange):
		abortWithError(c, http.StatusNotFound, "entry_not_found", err.Error())
	case errors.Is(err, services.ErrUnknownField):
		abortWithError(c, http.StatusBadRequest, "unknown_field", err.Error())
	case errors.Is(err, services.ErrNotReady):
		abortWithError(c, http.StatusUnprocessableEntity, "not_ready", err.Error())
	case errors.Is(err, services.ErrRunInProgress):
		abortWithError(c, http.StatusConflict, "run_in_progress", err.Error())
	default:
		slog.Error("unhandled error", "error", err, "request_id", middleware.RequestIDFromContext(c))
		abortWithError(c, http.StatusInternalServerError, "internal", "Unexpected server error")
	}
}

func respondBindError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "invalid_request", "Invalid JSON format: "+err.Error())
}
