// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/handler/dto"
)

// Hello is a simple hello endpoint for testing.
// GET /
func Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Linkstash!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "resource not found",
	}
	writeJSON(w, http.StatusNotFound, response)
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "method not allowed",
	}
	writeJSON(w, http.StatusMethodNotAllowed, response)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps application errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		exists     apperr.UserAlreadyExistsError
		noUser     apperr.UserNotFoundError
		badPass    apperr.IncorrectPasswordError
		noLink     apperr.LinkNotFoundError
		denied     apperr.AuthorizationError
		invalid    apperr.ValidationError
		dbFailure  apperr.DatabaseError
		srvFailure apperr.ServerError
	)
	switch {
	case errors.As(err, &exists):
		writeError(w, http.StatusConflict, "USER_EXISTS", exists.Error())
	case errors.As(err, &noUser):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", noUser.Error())
	case errors.As(err, &badPass):
		writeError(w, http.StatusUnauthorized, "INCORRECT_PASSWORD", badPass.Error())
	case errors.As(err, &noLink):
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", noLink.Error())
	case errors.As(err, &denied):
		writeError(w, http.StatusUnauthorized, "NOT_AUTHORIZED", denied.Error())
	case errors.As(err, &invalid):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", invalid.Error())
	case errors.As(err, &dbFailure):
		logger.Error("database_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	case errors.As(err, &srvFailure):
		logger.Error("server_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
