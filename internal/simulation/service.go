package simulation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mobiq/internal/tenancy/scope"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/requestcontext"
	"mobiq/pkg/sentinel"
)

// Service orchestrates tenant-scoped simulation CRUD. List reads go through
// the epoch-validated scope cache: results captured before a tenant switch
// are never served afterwards.
type Service struct {
	store     Store
	auditLog  AuditStore
	publisher *Publisher
	cache     *scope.Cache
	barrier   *scope.Barrier
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithPublisher(p *Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithCache(cache *scope.Cache, barrier *scope.Barrier) Option {
	return func(s *Service) {
		s.cache = cache
		s.barrier = barrier
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, auditLog AuditStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		auditLog: auditLog,
		logger:   slog.Default(),
		tracer:   otel.Tracer("mobiq/simulation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCommand carries the fields for a new simulation.
type CreateCommand struct {
	Name        string
	SubTenantID *id.SubTenantID
	EmployeeID  *id.EmployeeID
	CostTotal   int64
	Currency    string
}

func (s *Service) Create(ctx context.Context, tenantID id.TenantID, actorID id.UserID, cmd CreateCommand) (*Simulation, error) {
	ctx, span := s.tracer.Start(ctx, "simulation.create",
		trace.WithAttributes(attribute.String("tenant_id", tenantID.String())))
	defer span.End()

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "simulation name cannot be empty")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "simulation name must be 200 characters or less")
	}
	currency := cmd.Currency
	if currency == "" {
		currency = "EUR"
	}

	now := requestcontext.Now(ctx)
	sim := &Simulation{
		ID:          id.NewSimulationID(),
		TenantID:    tenantID,
		SubTenantID: cmd.SubTenantID,
		EmployeeID:  cmd.EmployeeID,
		Name:        name,
		Status:      StatusDraft,
		CostTotal:   cmd.CostTotal,
		Currency:    currency,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, sim); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create simulation")
	}

	s.emitAudit(ctx, sim, AuditCreated, actorID, "created as "+string(StatusDraft))
	return sim, nil
}

// UpdateCommand carries the mutable fields; nil means unchanged.
type UpdateCommand struct {
	Name      *string
	Status    *Status
	CostTotal *int64
}

func (s *Service) Update(ctx context.Context, tenantID id.TenantID, actorID id.UserID, simID id.SimulationID, cmd UpdateCommand) (*Simulation, error) {
	sim, err := s.Get(ctx, tenantID, simID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "simulation name cannot be empty")
		}
		sim.Name = name
	}
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown simulation status")
		}
		sim.Status = *cmd.Status
	}
	if cmd.CostTotal != nil {
		sim.CostTotal = *cmd.CostTotal
	}
	sim.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, sim); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "simulation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update simulation")
	}

	s.emitAudit(ctx, sim, AuditUpdated, actorID, "")
	return sim, nil
}

func (s *Service) Delete(ctx context.Context, tenantID id.TenantID, actorID id.UserID, simID id.SimulationID) error {
	sim, err := s.Get(ctx, tenantID, simID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, tenantID, simID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "simulation not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete simulation")
	}

	s.emitAudit(ctx, sim, AuditDeleted, actorID, "")
	return nil
}

func (s *Service) Get(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) (*Simulation, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	sim, err := s.store.FindByID(ctx, tenantID, simID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "simulation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load simulation")
	}
	return sim, nil
}

// List returns the tenant's simulations, served from the scope cache when the
// epoch still matches. The epoch is captured before the store read so a
// result that straddles a tenant switch is dropped instead of cached.
func (s *Service) List(ctx context.Context, tenantID id.TenantID) ([]*Simulation, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}

	cacheKey := "simulations:" + tenantID.String()
	now := requestcontext.Now(ctx)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey, tenantID, now); ok {
			return cached.([]*Simulation), nil
		}
	}

	var epoch uint64
	if s.barrier != nil {
		epoch = s.barrier.Current()
	}

	sims, err := s.store.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list simulations")
	}

	if s.cache != nil {
		s.cache.Put(cacheKey, tenantID, epoch, now, sims)
	}
	return sims, nil
}

// Audit returns the append-only trail for one simulation. The simulation is
// loaded first so cross-tenant probes read as not found.
func (s *Service) Audit(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) ([]*AuditEntry, error) {
	if _, err := s.Get(ctx, tenantID, simID); err != nil {
		return nil, err
	}
	entries, err := s.auditLog.ListBySimulation(ctx, tenantID, simID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit trail")
	}
	return entries, nil
}

func (s *Service) emitAudit(ctx context.Context, sim *Simulation, action AuditAction, actorID id.UserID, detail string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, AuditEntry{
		ID:           uuid.New(),
		SimulationID: sim.ID,
		TenantID:     sim.TenantID,
		Action:       action,
		ActorID:      actorID,
		Detail:       detail,
		CreatedAt:    requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit entry", "error", err)
	}
}
