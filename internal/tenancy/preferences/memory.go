package preferences

import (
	"context"
	"sync"

	id "mobiq/pkg/domain"
)

// InMemory stores preferences in memory for tests and development.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.ProfileID]id.TenantID
	themes  map[id.ProfileID]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		tenants: make(map[id.ProfileID]id.TenantID),
		themes:  make(map[id.ProfileID]string),
	}
}

func (s *InMemory) GetActiveTenant(_ context.Context, profileID id.ProfileID) (id.TenantID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tenantID, ok := s.tenants[profileID]
	return tenantID, ok, nil
}

func (s *InMemory) SetActiveTenant(_ context.Context, profileID id.ProfileID, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[profileID] = tenantID
	return nil
}

func (s *InMemory) GetTheme(_ context.Context, profileID id.ProfileID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themes[profileID], nil
}

func (s *InMemory) SetTheme(_ context.Context, profileID id.ProfileID, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[profileID] = theme
	return nil
}
