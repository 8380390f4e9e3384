package store

import (
	"context"
	"fmt"
	"sync"

	"mobiq/internal/tenancy/models"
	id "mobiq/pkg/domain"
	"mobiq/pkg/sentinel"
)

// InMemoryMemberships stores memberships in memory for tests and development.
// Insertion order is preserved per user, matching the stable fetch order the
// resolver depends on.
type InMemoryMemberships struct {
	mu     sync.RWMutex
	byUser map[id.UserID][]*models.Membership
}

func NewInMemoryMemberships() *InMemoryMemberships {
	return &InMemoryMemberships{byUser: make(map[id.UserID][]*models.Membership)}
}

func (s *InMemoryMemberships) ListByUser(_ context.Context, userID id.UserID) ([]*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byUser[userID]
	out := make([]*models.Membership, len(list))
	copy(out, list)
	return out, nil
}

func (s *InMemoryMemberships) Create(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byUser[m.UserID] {
		if existing.TenantID == m.TenantID {
			return fmt.Errorf("membership for tenant %s: %w", m.TenantID, sentinel.ErrAlreadyExists)
		}
	}
	s.byUser[m.UserID] = append(s.byUser[m.UserID], m)
	return nil
}

// InMemoryTenants stores tenant metadata in memory.
type InMemoryTenants struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
}

func NewInMemoryTenants() *InMemoryTenants {
	return &InMemoryTenants{tenants: make(map[id.TenantID]*models.Tenant)}
}

func (s *InMemoryTenants) Save(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
	return nil
}

func (s *InMemoryTenants) FindByIDs(_ context.Context, ids []id.TenantID) (map[id.TenantID]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[id.TenantID]*models.Tenant, len(ids))
	for _, tenantID := range ids {
		if t, ok := s.tenants[tenantID]; ok {
			out[tenantID] = t
		}
	}
	return out, nil
}
