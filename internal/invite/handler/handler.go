// Package handler exposes the privileged invite endpoint. The endpoint is
// called cross-origin by the web client, so every response - including the
// OPTIONS preflight and all errors - carries permissive CORS headers. The
// response shape is its own contract: {success, userId} or {error}.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/invite"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

type Handler struct {
	service   *invite.Service
	validator authmw.TokenValidator
	origin    string
	logger    *slog.Logger
}

func New(service *invite.Service, validator authmw.TokenValidator, origin string, logger *slog.Logger) *Handler {
	if origin == "" {
		origin = "*"
	}
	return &Handler{service: service, validator: validator, origin: origin, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/invite", h.HandleInvite)
	r.Options("/admin/invite", h.HandlePreflight)
}

// InviteRequest is the invite payload.
type InviteRequest struct {
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role,omitempty"`
}

func (h *Handler) setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", h.origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type, x-profile-id")
}

func (h *Handler) HandlePreflight(w http.ResponseWriter, _ *http.Request) {
	h.setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	h.setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Missing authorization"})
		return
	}

	claims, err := h.validator.ValidateToken(token)
	if err != nil {
		h.logger.WarnContext(ctx, "invite rejected - invalid token", "error", err, "request_id", requestID)
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		return
	}

	callerID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "A valid email address is required"})
		return
	}

	tenantID, err := id.ParseTenantID(req.TenantID)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "A tenant is required"})
		return
	}

	userID, err := h.service.Invite(ctx, callerID, id.Role(claims.Role), invite.Command{
		TenantID: tenantID,
		Email:    req.Email,
		Role:     id.Role(req.Role),
	})
	if err != nil {
		h.writeError(w, r, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"userId":  userID.String(),
	})
}

// writeError maps domain errors to this endpoint's response shape and status
// codes: 400 invalid input or duplicate, 403 insufficient permissions, 500
// generic for everything unexpected.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	var status int
	var message string
	switch {
	case dErrors.HasCode(err, dErrors.CodeForbidden):
		status, message = http.StatusForbidden, "Insufficient permissions"
	case dErrors.HasCode(err, dErrors.CodeBadRequest):
		status = http.StatusBadRequest
		message = "Invalid request"
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) && domainErr.Message != "" {
			message = domainErr.Message
		}
	default:
		h.logger.ErrorContext(r.Context(), "invite failed", "error", err, "request_id", requestID)
		status, message = http.StatusInternalServerError, "An unexpected error occurred"
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}
