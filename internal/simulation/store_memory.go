package simulation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	id "mobiq/pkg/domain"
	"mobiq/pkg/sentinel"
)

// InMemoryStore stores simulations in memory for tests and development.
type InMemoryStore struct {
	mu   sync.RWMutex
	sims map[id.SimulationID]*Simulation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sims: make(map[id.SimulationID]*Simulation)}
}

func (s *InMemoryStore) Create(_ context.Context, sim *Simulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sim
	s.sims[sim.ID] = &copied
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, sim *Simulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sims[sim.ID]
	if !ok || existing.TenantID != sim.TenantID {
		return fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
	}
	copied := *sim
	s.sims[sim.ID] = &copied
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, tenantID id.TenantID, simID id.SimulationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sims[simID]
	if !ok || existing.TenantID != tenantID {
		return fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
	}
	delete(s.sims, simID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenantID id.TenantID, simID id.SimulationID) (*Simulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sim, ok := s.sims[simID]
	if !ok || sim.TenantID != tenantID {
		return nil, fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
	}
	copied := *sim
	return &copied, nil
}

func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*Simulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Simulation, 0)
	for _, sim := range s.sims {
		if sim.TenantID == tenantID {
			copied := *sim
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// InMemoryAuditStore keeps the audit trail in memory.
type InMemoryAuditStore struct {
	mu      sync.RWMutex
	entries []*AuditEntry
}

func NewInMemoryAuditStore() *InMemoryAuditStore {
	return &InMemoryAuditStore{}
}

func (s *InMemoryAuditStore) Append(_ context.Context, entry *AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *InMemoryAuditStore) ListBySimulation(_ context.Context, tenantID id.TenantID, simID id.SimulationID) ([]*AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*AuditEntry, 0)
	for _, e := range s.entries {
		if e.TenantID == tenantID && e.SimulationID == simID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}
