// Package handler exposes the route guard as an HTTP decision endpoint the
// web client consults on navigation.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mobiq/internal/guard"
	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

var guardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mobiq_guard_decisions_total",
	Help: "Route guard decisions by outcome",
}, []string{"outcome"})

// TenantResolver yields the caller's active tenant and per-tenant role.
type TenantResolver interface {
	ActiveTenant(ctx context.Context, userID id.UserID, profileID id.ProfileID) (id.TenantID, id.Role, error)
}

// ModuleLoader fetches a tenant's governance rows.
type ModuleLoader interface {
	ListTenantModules(ctx context.Context, tenantID id.TenantID) ([]modules.TenantModule, error)
}

type Handler struct {
	tenants TenantResolver
	loader  ModuleLoader
	logger  *slog.Logger
}

func New(tenants TenantResolver, loader ModuleLoader, logger *slog.Logger) *Handler {
	return &Handler{tenants: tenants, loader: loader, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/access/decision", h.HandleDecision)
}

// HandleDecision evaluates the guard for ?path=. The guard itself never
// errors; only a missing principal or an unresolvable tenant does.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	principal := authmw.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	pathname := r.URL.Query().Get("path")
	if pathname == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "path query parameter is required"))
		return
	}

	profileID, err := id.ParseProfileID(r.Header.Get("X-Profile-ID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tenantID, role, err := h.tenants.ActiveTenant(ctx, principal.UserID, profileID)
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve active tenant failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	// Module rows failing to load is treated as not-yet-loaded: the guard
	// stays fail-open rather than surfacing an error on navigation.
	snap := guard.Snapshot{}
	rows, err := h.loader.ListTenantModules(ctx, tenantID)
	if err != nil {
		h.logger.WarnContext(ctx, "module rows unavailable, guard failing open",
			"error", err,
			"tenant_id", tenantID.String(),
			"request_id", requestID,
		)
	} else {
		snap = guard.Snapshot{Loaded: true, Rows: rows}
	}

	decision := guard.Evaluate(role, pathname, snap)
	guardDecisions.WithLabelValues(string(decision.Action)).Inc()

	httputil.WriteJSON(w, http.StatusOK, decision)
}
