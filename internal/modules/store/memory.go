package store

import (
	"context"
	"sync"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
)

// InMemory stores module rows in memory for tests and development.
type InMemory struct {
	mu   sync.RWMutex
	rows map[id.TenantID]map[modules.Key]modules.TenantModule
}

// NewInMemory constructs an empty in-memory module store.
func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[id.TenantID]map[modules.Key]modules.TenantModule)}
}

func (s *InMemory) ListByTenant(_ context.Context, tenantID id.TenantID) ([]modules.TenantModule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Non-nil even when empty: callers rely on nil meaning "not loaded".
	out := make([]modules.TenantModule, 0, len(s.rows[tenantID]))
	for _, key := range modules.AllKeys {
		if row, ok := s.rows[tenantID][key]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *InMemory) Upsert(_ context.Context, row *modules.TenantModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.rows[row.TenantID]
	if !ok {
		byKey = make(map[modules.Key]modules.TenantModule)
		s.rows[row.TenantID] = byKey
	}
	if existing, ok := byKey[row.Key]; ok {
		row.ID = existing.ID
	}
	byKey[row.Key] = *row
	return nil
}
