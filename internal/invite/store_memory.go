package invite

import (
	"context"
	"fmt"
	"sync"

	id "mobiq/pkg/domain"
	"mobiq/pkg/sentinel"
)

// InMemoryDirectory stores invited users in memory for tests and development.
type InMemoryDirectory struct {
	mu    sync.RWMutex
	users map[id.UserID]*InvitedUser
}

func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{users: make(map[id.UserID]*InvitedUser)}
}

func (d *InMemoryDirectory) CreateInvited(_ context.Context, user *InvitedUser) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.users {
		if existing.Email == user.Email && existing.TenantID == user.TenantID {
			return fmt.Errorf("user %s has already been registered: %w", user.Email, sentinel.ErrAlreadyExists)
		}
	}
	d.users[user.ID] = user
	return nil
}

// FindByEmail is used by tests to inspect directory state.
func (d *InMemoryDirectory) FindByEmail(_ context.Context, tenantID id.TenantID, email string) (*InvitedUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Email == email && u.TenantID == tenantID {
			return u, nil
		}
	}
	return nil, fmt.Errorf("invited user: %w", sentinel.ErrNotFound)
}
