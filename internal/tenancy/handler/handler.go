package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/tenancy/models"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

// Service defines the tenant resolver operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Resolve(ctx context.Context, userID id.UserID, profileID id.ProfileID) (*models.Resolution, error)
	SwitchTenant(ctx context.Context, userID id.UserID, profileID id.ProfileID, tenantID id.TenantID) (*models.Resolution, error)
	Preferences(ctx context.Context, profileID id.ProfileID) (*models.Preferences, error)
	SetTheme(ctx context.Context, profileID id.ProfileID, theme string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/me/tenants", h.HandleResolve)
	r.Post("/me/tenants/active", h.HandleSwitchTenant)
	r.Get("/me/preferences", h.HandleGetPreferences)
	r.Put("/me/preferences", h.HandleSetPreferences)
}

// requireCallerContext extracts the principal and client profile the tenancy
// endpoints operate on.
func (h *Handler) requireCallerContext(w http.ResponseWriter, r *http.Request) (*authmw.Principal, id.ProfileID, bool) {
	ctx := r.Context()
	principal := authmw.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return nil, "", false
	}
	profileID, err := id.ParseProfileID(r.Header.Get("X-Profile-ID"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, "", false
	}
	return principal, profileID, true
}

// HandleResolve returns the caller's memberships and validated active tenant.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	principal, profileID, ok := h.requireCallerContext(w, r)
	if !ok {
		return
	}

	resolution, err := h.service.Resolve(ctx, principal.UserID, profileID)
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant resolution failed",
			"error", err,
			"user_id", principal.UserID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resolution)
}

// SwitchTenantRequest selects a new active tenant.
type SwitchTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

func (req *SwitchTenantRequest) Validate() error {
	if req.TenantID == "" {
		return dErrors.New(dErrors.CodeValidation, "tenant_id is required")
	}
	return nil
}

// HandleSwitchTenant persists a new selection and invalidates all cached data
// scoped to the previous tenant.
func (h *Handler) HandleSwitchTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	principal, profileID, ok := h.requireCallerContext(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SwitchTenantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenantID, err := id.ParseTenantID(req.TenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resolution, err := h.service.SwitchTenant(ctx, principal.UserID, profileID, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant switch failed",
			"error", err,
			"tenant_id", tenantID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resolution)
}

func (h *Handler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, profileID, ok := h.requireCallerContext(w, r)
	if !ok {
		return
	}

	prefs, err := h.service.Preferences(ctx, profileID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, prefs)
}

// SetPreferencesRequest updates the theme preference.
type SetPreferencesRequest struct {
	Theme string `json:"theme"`
}

func (req *SetPreferencesRequest) Validate() error {
	switch req.Theme {
	case "light", "dark", "system":
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, "theme must be light, dark, or system")
}

func (h *Handler) HandleSetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	_, profileID, ok := h.requireCallerContext(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[SetPreferencesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetTheme(ctx, profileID, req.Theme); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.Preferences{Theme: req.Theme})
}
