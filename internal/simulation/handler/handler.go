package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/simulation"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

// Service defines the simulation operations. All are scoped to the caller's
// active tenant; the handler never accepts a tenant from the request body.
type Service interface {
	Create(ctx context.Context, tenantID id.TenantID, actorID id.UserID, cmd simulation.CreateCommand) (*simulation.Simulation, error)
	Update(ctx context.Context, tenantID id.TenantID, actorID id.UserID, simID id.SimulationID, cmd simulation.UpdateCommand) (*simulation.Simulation, error)
	Delete(ctx context.Context, tenantID id.TenantID, actorID id.UserID, simID id.SimulationID) error
	Get(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) (*simulation.Simulation, error)
	List(ctx context.Context, tenantID id.TenantID) ([]*simulation.Simulation, error)
	Audit(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) ([]*simulation.AuditEntry, error)
}

// TenantResolver yields the caller's active tenant and per-tenant role.
type TenantResolver interface {
	ActiveTenant(ctx context.Context, userID id.UserID, profileID id.ProfileID) (id.TenantID, id.Role, error)
}

type Handler struct {
	service Service
	tenants TenantResolver
	logger  *slog.Logger
}

func New(service Service, tenants TenantResolver, logger *slog.Logger) *Handler {
	return &Handler{service: service, tenants: tenants, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/simulations", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Get("/{id}/audit", h.HandleAudit)
	})
}

// callerScope resolves the tenant scope every simulation request runs under.
func (h *Handler) callerScope(w http.ResponseWriter, r *http.Request) (id.TenantID, id.UserID, bool) {
	ctx := r.Context()
	principal := authmw.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.TenantID{}, id.UserID{}, false
	}
	profileID, err := id.ParseProfileID(r.Header.Get("X-Profile-ID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.TenantID{}, id.UserID{}, false
	}
	tenantID, _, err := h.tenants.ActiveTenant(ctx, principal.UserID, profileID)
	if err != nil {
		h.logger.ErrorContext(ctx, "resolve active tenant failed",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return id.TenantID{}, id.UserID{}, false
	}
	return tenantID, principal.UserID, true
}

func simulationIDParam(w http.ResponseWriter, r *http.Request) (id.SimulationID, bool) {
	simID, err := id.ParseSimulationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.SimulationID{}, false
	}
	return simID, true
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, _, ok := h.callerScope(w, r)
	if !ok {
		return
	}

	sims, err := h.service.List(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sims)
}

// CreateSimulationRequest creates a draft simulation in the active tenant.
type CreateSimulationRequest struct {
	Name        string  `json:"name"`
	SubTenantID *string `json:"sub_tenant_id,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	CostTotal   int64   `json:"cost_total"`
	Currency    string  `json:"currency,omitempty"`
}

func (req *CreateSimulationRequest) Validate() error {
	if req.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if req.CostTotal < 0 {
		return dErrors.New(dErrors.CodeValidation, "cost_total cannot be negative")
	}
	return nil
}

func (req *CreateSimulationRequest) toCommand() (simulation.CreateCommand, error) {
	cmd := simulation.CreateCommand{
		Name:      req.Name,
		CostTotal: req.CostTotal,
		Currency:  req.Currency,
	}
	if req.SubTenantID != nil {
		subID, err := id.ParseSubTenantID(*req.SubTenantID)
		if err != nil {
			return simulation.CreateCommand{}, err
		}
		cmd.SubTenantID = &subID
	}
	if req.EmployeeID != nil {
		empID, err := id.ParseEmployeeID(*req.EmployeeID)
		if err != nil {
			return simulation.CreateCommand{}, err
		}
		cmd.EmployeeID = &empID
	}
	return cmd, nil
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, actorID, ok := h.callerScope(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateSimulationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sim, err := h.service.Create(ctx, tenantID, actorID, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "simulation create failed",
			"error", err,
			"tenant_id", tenantID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sim)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, _, ok := h.callerScope(w, r)
	if !ok {
		return
	}
	simID, ok := simulationIDParam(w, r)
	if !ok {
		return
	}

	sim, err := h.service.Get(ctx, tenantID, simID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sim)
}

// UpdateSimulationRequest updates name, status, or cost; absent fields are
// left unchanged.
type UpdateSimulationRequest struct {
	Name      *string `json:"name,omitempty"`
	Status    *string `json:"status,omitempty"`
	CostTotal *int64  `json:"cost_total,omitempty"`
}

func (req *UpdateSimulationRequest) Validate() error {
	if req.Name == nil && req.Status == nil && req.CostTotal == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one field must be provided")
	}
	if req.CostTotal != nil && *req.CostTotal < 0 {
		return dErrors.New(dErrors.CodeValidation, "cost_total cannot be negative")
	}
	return nil
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, actorID, ok := h.callerScope(w, r)
	if !ok {
		return
	}
	simID, ok := simulationIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateSimulationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd := simulation.UpdateCommand{Name: req.Name, CostTotal: req.CostTotal}
	if req.Status != nil {
		status := simulation.Status(*req.Status)
		cmd.Status = &status
	}

	sim, err := h.service.Update(ctx, tenantID, actorID, simID, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "simulation update failed",
			"error", err,
			"simulation_id", simID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sim)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, actorID, ok := h.callerScope(w, r)
	if !ok {
		return
	}
	simID, ok := simulationIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, tenantID, actorID, simID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, _, ok := h.callerScope(w, r)
	if !ok {
		return
	}
	simID, ok := simulationIDParam(w, r)
	if !ok {
		return
	}

	entries, err := h.service.Audit(ctx, tenantID, simID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}
