// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "mobiq/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing UserID where TenantID is expected.
type (
	UserID       uuid.UUID
	TenantID     uuid.UUID
	SubTenantID  uuid.UUID
	MembershipID uuid.UUID
	ModuleRowID  uuid.UUID
	SimulationID uuid.UUID
	EmployeeID   uuid.UUID
)

// ProfileID identifies a browser profile for durable client preferences.
// Opaque client-generated string, not a UUID.
type ProfileID string

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParseSubTenantID(s string) (SubTenantID, error) {
	id, err := parseUUID(s, "sub-tenant ID")
	return SubTenantID(id), err
}

func ParseMembershipID(s string) (MembershipID, error) {
	id, err := parseUUID(s, "membership ID")
	return MembershipID(id), err
}

func ParseModuleRowID(s string) (ModuleRowID, error) {
	id, err := parseUUID(s, "module row ID")
	return ModuleRowID(id), err
}

func ParseSimulationID(s string) (SimulationID, error) {
	id, err := parseUUID(s, "simulation ID")
	return SimulationID(id), err
}

func ParseEmployeeID(s string) (EmployeeID, error) {
	id, err := parseUUID(s, "employee ID")
	return EmployeeID(id), err
}

func ParseProfileID(s string) (ProfileID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "profile ID cannot be empty")
	}
	if len(s) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "profile ID too long")
	}
	return ProfileID(s), nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return id, nil
}

// String methods - for logging and debugging.

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id TenantID) String() string     { return uuid.UUID(id).String() }
func (id SubTenantID) String() string  { return uuid.UUID(id).String() }
func (id MembershipID) String() string { return uuid.UUID(id).String() }
func (id ModuleRowID) String() string  { return uuid.UUID(id).String() }
func (id SimulationID) String() string { return uuid.UUID(id).String() }
func (id EmployeeID) String() string   { return uuid.UUID(id).String() }
func (id ProfileID) String() string    { return string(id) }

// Text marshaling - IDs travel as canonical UUID strings in JSON.

func (id UserID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id TenantID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id SubTenantID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id MembershipID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ModuleRowID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id SimulationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id EmployeeID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = UserID(u)
	return err
}

func (id *TenantID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = TenantID(u)
	return err
}

func (id *SubTenantID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = SubTenantID(u)
	return err
}

func (id *MembershipID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = MembershipID(u)
	return err
}

func (id *ModuleRowID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = ModuleRowID(u)
	return err
}

func (id *SimulationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = SimulationID(u)
	return err
}

func (id *EmployeeID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	*id = EmployeeID(u)
	return err
}

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id TenantID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SubTenantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id MembershipID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ModuleRowID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SimulationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EmployeeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// New functions - for creating fresh identifiers.

func NewUserID() UserID             { return UserID(uuid.New()) }
func NewTenantID() TenantID         { return TenantID(uuid.New()) }
func NewMembershipID() MembershipID { return MembershipID(uuid.New()) }
func NewModuleRowID() ModuleRowID   { return ModuleRowID(uuid.New()) }
func NewSimulationID() SimulationID { return SimulationID(uuid.New()) }
func NewEmployeeID() EmployeeID     { return EmployeeID(uuid.New()) }
