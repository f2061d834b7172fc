package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/handler/dto"
	"github.com/linkstash/linkstash/internal/model"
	"github.com/linkstash/linkstash/internal/service"
)

// LinkHandler handles HTTP requests for link operations. Every route
// it serves sits behind the auth middleware, so claims are always
// present on the request context.
type LinkHandler struct {
	svc    *service.LinkService
	logger *slog.Logger
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(svc *service.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/links.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req dto.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateLinkURL(req.URL); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	item := model.NewLinkItem(claims.Subject, req.URL, req.Title, req.Description)

	created, err := h.svc.Create(r.Context(), item)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("link_created", "link_id", created.ID, "owner", created.Owner)

	writeJSON(w, http.StatusCreated, dto.ToLinkResponse(created))
}

// Search handles GET /api/v1/links.
func (h *LinkHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	query := model.LinkQuery{
		Owner:     claims.Subject,
		FromAdmin: claims.Admin,
	}

	items, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkListResponse(items))
}

// Get handles GET /api/v1/links/{id}.
func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	query := model.LinkQuery{
		ID:        id,
		Owner:     claims.Subject,
		FromAdmin: claims.Admin,
	}

	item, err := h.svc.Get(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(item))
}

// Update handles PUT /api/v1/links/{id}.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	var req dto.UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateLinkURL(req.URL); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	query := model.LinkQuery{
		ID:        id,
		Owner:     claims.Subject,
		FromAdmin: claims.Admin,
	}
	item := model.NewLinkItem(claims.Subject, req.URL, req.Title, req.Description)

	updated, err := h.svc.Update(r.Context(), query, item)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("link_updated", "link_id", updated.ID)

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(updated))
}

// Delete handles DELETE /api/v1/links/{id}.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	query := model.LinkQuery{
		ID:        id,
		Owner:     claims.Subject,
		FromAdmin: claims.Admin,
	}

	if err := h.svc.Delete(r.Context(), query); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("link_deleted", "link_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// validateLinkURL rejects empty or unparseable URLs before they are
// persisted.
func validateLinkURL(raw string) error {
	if raw == "" {
		return apperr.ValidationError{Msg: "url is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperr.ValidationError{Msg: "url must be absolute with a scheme and host"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.ValidationError{Msg: "url scheme must be http or https"}
	}
	return nil
}
