// Package preferences persists durable per-client-profile settings: the
// active-tenant selection and the theme. Storage is scoped per browser
// profile, not per principal, and must survive reloads.
package preferences

import (
	"context"

	id "mobiq/pkg/domain"
)

// Store is simple key-to-string persistence keyed by client profile.
type Store interface {
	GetActiveTenant(ctx context.Context, profileID id.ProfileID) (id.TenantID, bool, error)
	SetActiveTenant(ctx context.Context, profileID id.ProfileID, tenantID id.TenantID) error
	GetTheme(ctx context.Context, profileID id.ProfileID) (string, error)
	SetTheme(ctx context.Context, profileID id.ProfileID, theme string) error
}
