// Package invite implements the privileged user-invitation flow: an admin or
// superadmin bearer may invite an email address into a tenant, optionally
// with a non-default role. Email delivery happens downstream of the emitted
// event.
package invite

import (
	"time"

	id "mobiq/pkg/domain"
)

// InvitedUser is a directory record created by an invite.
type InvitedUser struct {
	ID        id.UserID   `json:"id"`
	TenantID  id.TenantID `json:"tenant_id"`
	Email     string      `json:"email"`
	Role      id.Role     `json:"role"`
	InvitedBy id.UserID   `json:"invited_by"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserInvited is the event emitted after a successful invite.
type UserInvited struct {
	UserID    id.UserID   `json:"user_id"`
	TenantID  id.TenantID `json:"tenant_id"`
	Email     string      `json:"email"`
	Role      id.Role     `json:"role"`
	InvitedBy id.UserID   `json:"invited_by"`
	RequestID string      `json:"request_id,omitempty"`
}
