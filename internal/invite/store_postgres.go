package invite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"mobiq/pkg/sentinel"
)

// PostgresDirectory persists invited users in PostgreSQL.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) CreateInvited(ctx context.Context, user *InvitedUser) error {
	query := `
		INSERT INTO invited_users (id, tenant_id, email, role, invited_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := d.db.ExecContext(ctx, query,
		uuid.UUID(user.ID), uuid.UUID(user.TenantID), user.Email, string(user.Role),
		uuid.UUID(user.InvitedBy), user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on (tenant_id, email)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user %s has already been registered: %w", user.Email, sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create invited user: %w", err)
	}
	return nil
}
