// Package httpapi exposes the REST API: routing, request validation, auth
// middleware and the mapping from error kinds to status codes.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobly/api-service/internal/apperr"
)

// errorBody is the error envelope returned on every failure.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindBadRequest, apperr.KindBadReference:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code and writes the error envelope.
// Internal faults are logged with their cause but reach the client opaque.
func writeError(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": errorBody{Message: msg, Status: status}})
}

// badRequest writes a 400 with the given message.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Message: msg, Status: http.StatusBadRequest}})
}
