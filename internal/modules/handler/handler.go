package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
	request "mobiq/pkg/platform/middleware/request"
)

// Service defines the module governance operations the handler needs.
type Service interface {
	ListTenantModules(ctx context.Context, tenantID id.TenantID) ([]modules.TenantModule, error)
	SetEnabled(ctx context.Context, tenantID id.TenantID, key modules.Key, enabled bool) (*modules.TenantModule, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts read routes. Write routes are mounted separately so the
// router can wrap them with the admin requirement.
func (h *Handler) Register(r chi.Router) {
	r.Get("/modules", h.HandleRegistry)
	r.Get("/tenants/{id}/modules", h.HandleListTenantModules)
}

// RegisterAdmin mounts the governance write routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/tenants/{id}/modules/{key}", h.HandleSetEnabled)
}

// ModuleDescriptor is one catalog entry in the registry response.
type ModuleDescriptor struct {
	Key   modules.Key `json:"key"`
	Label string      `json:"label"`
}

// RouteDescriptor is one route binding in the registry response, in
// declaration order.
type RouteDescriptor struct {
	Path   string      `json:"path"`
	Module modules.Key `json:"module_key"`
}

// RegistryResponse is the static module catalog.
type RegistryResponse struct {
	Modules []ModuleDescriptor `json:"modules"`
	Routes  []RouteDescriptor  `json:"routes"`
}

// HandleRegistry returns the compiled module catalog.
func (h *Handler) HandleRegistry(w http.ResponseWriter, _ *http.Request) {
	resp := RegistryResponse{
		Modules: make([]ModuleDescriptor, 0, len(modules.AllKeys)),
		Routes:  make([]RouteDescriptor, 0, len(modules.RouteTable)),
	}
	for _, k := range modules.AllKeys {
		resp.Modules = append(resp.Modules, ModuleDescriptor{Key: k, Label: modules.Label(k)})
	}
	for _, b := range modules.RouteTable {
		resp.Routes = append(resp.Routes, RouteDescriptor{Path: b.Path, Module: b.Module})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// TenantModulesResponse lists a tenant's governance rows.
type TenantModulesResponse struct {
	Modules []modules.TenantModule `json:"modules"`
}

func (h *Handler) HandleListTenantModules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rows, err := h.service.ListTenantModules(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tenant modules failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TenantModulesResponse{Modules: rows})
}

// SetEnabledRequest toggles one module for a tenant.
type SetEnabledRequest struct {
	Enabled *bool `json:"is_enabled"`
}

func (req *SetEnabledRequest) Validate() error {
	if req.Enabled == nil {
		return dErrors.New(dErrors.CodeValidation, "is_enabled is required")
	}
	return nil
}

func (h *Handler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	key := modules.Key(chi.URLParam(r, "key"))

	req, ok := httputil.DecodeAndPrepare[SetEnabledRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	row, err := h.service.SetEnabled(ctx, tenantID, key, *req.Enabled)
	if err != nil {
		h.logger.ErrorContext(ctx, "set module enabled failed",
			"error", err,
			"tenant_id", tenantID.String(),
			"module_key", string(key),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, row)
}
