package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/handler/dto"
	"github.com/linkstash/linkstash/internal/service"
)

// UserHandler handles HTTP requests for registration and login.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/v1/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateCredentials(req.Email, req.Password); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	info, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Admin)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_registered", "user_id", info.ID, "admin", info.Admin)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(info))
}

// Login handles POST /api/v1/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateCredentials(req.Email, req.Password); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_logged_in", "email", req.Email)

	writeJSON(w, http.StatusOK, dto.LoginResponse{Token: string(token)})
}

// validateCredentials checks the request fields before they reach the
// service.
func validateCredentials(email, password string) error {
	if email == "" {
		return apperr.ValidationError{Msg: "email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.ValidationError{Msg: "email is not a valid address"}
	}
	if password == "" {
		return apperr.ValidationError{Msg: "password is required"}
	}
	return nil
}
