// Package impersonation holds the ephemeral "view as" state an admin session
// can present under. The state is in-memory only, bounded to the session, and
// is presentation-only: no authorization decision anywhere in the system may
// consult it. Conflating it with actual privilege would be a security defect.
package impersonation

import (
	"sync"

	id "mobiq/pkg/domain"
)

// ImpersonatedUser is the user a session presents as.
type ImpersonatedUser struct {
	ID          id.UserID `json:"id"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        id.Role   `json:"role"`
}

// Manager tracks impersonation per session. Never persisted; a process
// restart clears everything, matching the reload semantics of the client.
type Manager struct {
	mu        sync.RWMutex
	bySession map[string]*ImpersonatedUser
}

func NewManager() *Manager {
	return &Manager{bySession: make(map[string]*ImpersonatedUser)}
}

// Start begins impersonating for the session, replacing any existing
// impersonation. There is no stacking.
func (m *Manager) Start(sessionID string, user ImpersonatedUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySession[sessionID] = &user
}

// Stop clears the session's impersonation.
func (m *Manager) Stop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bySession, sessionID)
}

// Current returns the session's impersonated user, if any.
func (m *Manager) Current(sessionID string) (*ImpersonatedUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.bySession[sessionID]
	if !ok {
		return nil, false
	}
	copied := *u
	return &copied, true
}
