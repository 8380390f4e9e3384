// Package service implements the tenant resolver: memberships, metadata
// decoration, active-selection repair, and tenant switching with the global
// invalidation barrier.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"mobiq/internal/tenancy/metrics"
	"mobiq/internal/tenancy/models"
	"mobiq/internal/tenancy/preferences"
	"mobiq/internal/tenancy/scope"
	"mobiq/internal/tenancy/store"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
)

// Service resolves the active tenant for a principal and owns tenant
// switching. It does not filter tenant-scoped data itself; it only identifies
// the scope every downstream read must filter on.
type Service struct {
	memberships store.MembershipStore
	tenants     store.TenantStore
	prefs       preferences.Store
	barrier     *scope.Barrier
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	group       singleflight.Group
}

// Option configures the Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(memberships store.MembershipStore, tenants store.TenantStore, prefs preferences.Store, barrier *scope.Barrier, opts ...Option) *Service {
	s := &Service{
		memberships: memberships,
		tenants:     tenants,
		prefs:       prefs,
		barrier:     barrier,
		logger:      slog.Default(),
		tracer:      otel.Tracer("mobiq/tenancy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the principal's memberships decorated with tenant metadata
// and the validated active selection. If the persisted selection matches no
// membership it is replaced with the first membership in fetch order and
// persisted back.
func (s *Service) Resolve(ctx context.Context, userID id.UserID, profileID id.ProfileID) (*models.Resolution, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "tenancy.resolve",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	// Concurrent resolutions for the same principal+profile collapse into one
	// membership fetch; the selection repair inside runs at most once.
	key := userID.String() + ":" + string(profileID)
	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(ctx, userID, profileID)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveResolve(start)
	return result.(*models.Resolution), nil
}

func (s *Service) resolve(ctx context.Context, userID id.UserID, profileID id.ProfileID) (*models.Resolution, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load memberships")
	}
	if len(memberships) == 0 {
		return nil, dErrors.New(dErrors.CodeForbidden, "no tenant memberships")
	}

	summaries, err := s.decorate(ctx, memberships)
	if err != nil {
		return nil, err
	}

	active, err := s.activeSelection(ctx, profileID, memberships)
	if err != nil {
		return nil, err
	}

	return &models.Resolution{
		Memberships:    summaries,
		ActiveTenantID: active,
	}, nil
}

// decorate joins tenant display metadata onto memberships, keyed by the
// distinct tenant ids from the membership list.
func (s *Service) decorate(ctx context.Context, memberships []*models.Membership) ([]models.TenantSummary, error) {
	distinct := make([]id.TenantID, 0, len(memberships))
	seen := make(map[id.TenantID]struct{}, len(memberships))
	for _, m := range memberships {
		if _, ok := seen[m.TenantID]; !ok {
			seen[m.TenantID] = struct{}{}
			distinct = append(distinct, m.TenantID)
		}
	}

	meta, err := s.tenants.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant metadata")
	}

	summaries := make([]models.TenantSummary, 0, len(memberships))
	for _, m := range memberships {
		summary := models.TenantSummary{
			TenantID:    m.TenantID,
			SubTenantID: m.SubTenantID,
			Role:        m.Role,
		}
		if t, ok := meta[m.TenantID]; ok {
			summary.Name = t.Name
			summary.Slug = t.Slug
			summary.LogoURL = t.LogoURL
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// activeSelection reads the persisted selection and repairs it when it
// matches no current membership.
func (s *Service) activeSelection(ctx context.Context, profileID id.ProfileID, memberships []*models.Membership) (id.TenantID, error) {
	persisted, found, err := s.prefs.GetActiveTenant(ctx, profileID)
	if err != nil {
		return id.TenantID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read tenant selection")
	}

	if found {
		for _, m := range memberships {
			if m.TenantID == persisted {
				return persisted, nil
			}
		}
		s.logger.InfoContext(ctx, "persisted tenant selection invalid, repairing",
			"persisted", persisted.String(),
		)
	}

	first := memberships[0].TenantID
	if err := s.prefs.SetActiveTenant(ctx, profileID, first); err != nil {
		return id.TenantID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist tenant selection")
	}
	if found {
		s.metrics.IncrementSelectionRepairs()
	}
	return first, nil
}

// ActiveTenant returns the active tenant id and the caller's role within it.
func (s *Service) ActiveTenant(ctx context.Context, userID id.UserID, profileID id.ProfileID) (id.TenantID, id.Role, error) {
	resolution, err := s.Resolve(ctx, userID, profileID)
	if err != nil {
		return id.TenantID{}, "", err
	}
	return resolution.ActiveTenantID, resolution.ActiveRole(), nil
}

// SwitchTenant sets the selection, persists it, and bumps the scope barrier
// so every tenant-scoped cached query is marked stale atomically with the
// switch. Partial invalidation is not possible.
func (s *Service) SwitchTenant(ctx context.Context, userID id.UserID, profileID id.ProfileID, tenantID id.TenantID) (*models.Resolution, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}

	ctx, span := s.tracer.Start(ctx, "tenancy.switch",
		trace.WithAttributes(attribute.String("tenant_id", tenantID.String())))
	defer span.End()

	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load memberships")
	}

	var match *models.Membership
	for _, m := range memberships {
		if m.TenantID == tenantID {
			match = m
			break
		}
	}
	if match == nil {
		return nil, dErrors.New(dErrors.CodeForbidden, "no membership for the requested tenant")
	}

	if err := s.prefs.SetActiveTenant(ctx, profileID, tenantID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist tenant selection")
	}

	epoch := s.barrier.Bump()
	s.metrics.IncrementTenantSwitches()
	s.logger.InfoContext(ctx, "tenant switched",
		"tenant_id", tenantID.String(),
		"user_id", userID.String(),
		"scope_epoch", epoch,
	)

	summaries, err := s.decorate(ctx, memberships)
	if err != nil {
		return nil, err
	}
	return &models.Resolution{
		Memberships:    summaries,
		ActiveTenantID: tenantID,
	}, nil
}

// Preferences returns the durable profile preferences.
func (s *Service) Preferences(ctx context.Context, profileID id.ProfileID) (*models.Preferences, error) {
	theme, err := s.prefs.GetTheme(ctx, profileID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read preferences")
	}
	return &models.Preferences{Theme: theme}, nil
}

// SetTheme persists the theme preference for the profile.
func (s *Service) SetTheme(ctx context.Context, profileID id.ProfileID, theme string) error {
	if err := s.prefs.SetTheme(ctx, profileID, theme); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist preferences")
	}
	return nil
}
