package invite

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Directory,EventEmitter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mobiq/internal/platform/kafka/producer"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/requestcontext"
	"mobiq/pkg/sentinel"
)

// TopicUserInvited is the kafka topic invite events are published to. The
// email-delivery consumer subscribes to it.
const TopicUserInvited = "mobiq.user.invited"

var invitesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mobiq_invites_total",
	Help: "Invite attempts by outcome",
}, []string{"outcome"})

// Directory creates invited users in the user directory.
type Directory interface {
	CreateInvited(ctx context.Context, user *InvitedUser) error
}

// EventEmitter publishes invite events.
type EventEmitter interface {
	ProduceAsync(msg *producer.Message) error
}

// Command is a validated invite request.
type Command struct {
	TenantID id.TenantID
	Email    string
	// Role overrides the default employee role when set.
	Role id.Role
}

// Service performs privileged invites. Authorization (admin or superadmin) is
// enforced here, not in middleware, so the rule travels with the operation.
type Service struct {
	directory Directory
	emitter   EventEmitter
	logger    *slog.Logger
}

func New(directory Directory, emitter EventEmitter, logger *slog.Logger) *Service {
	return &Service{directory: directory, emitter: emitter, logger: logger}
}

// Invite validates the caller and target, creates the invited user, and emits
// the invited event. Failures surface as domain errors with sanitized
// messages; internal error detail never reaches the client.
func (s *Service) Invite(ctx context.Context, callerID id.UserID, callerRole id.Role, cmd Command) (id.UserID, error) {
	if !callerRole.IsAdmin() {
		invitesIssued.WithLabelValues("forbidden").Inc()
		return id.UserID{}, dErrors.New(dErrors.CodeForbidden, "Insufficient permissions")
	}

	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" {
		invitesIssued.WithLabelValues("invalid").Inc()
		return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "A valid email address is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		invitesIssued.WithLabelValues("invalid").Inc()
		return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "A valid email address is required")
	}
	if cmd.TenantID.IsNil() {
		invitesIssued.WithLabelValues("invalid").Inc()
		return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "A tenant is required")
	}

	role := cmd.Role
	if role == "" {
		role = id.RoleEmployee
	}
	if !role.Valid() {
		invitesIssued.WithLabelValues("invalid").Inc()
		return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "Unknown role")
	}

	user := &InvitedUser{
		ID:        id.NewUserID(),
		TenantID:  cmd.TenantID,
		Email:     email,
		Role:      role,
		InvitedBy: callerID,
		CreatedAt: requestcontext.Now(ctx),
	}

	if err := s.directory.CreateInvited(ctx, user); err != nil {
		if isDuplicate(err) {
			invitesIssued.WithLabelValues("duplicate").Inc()
			return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "A user with this email has already been invited")
		}
		invitesIssued.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "invite failed", "error", err, "email", email)
		return id.UserID{}, dErrors.Wrap(err, dErrors.CodeInternal, "An unexpected error occurred")
	}

	s.emitInvited(ctx, user)
	invitesIssued.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "user invited",
		"user_id", user.ID.String(),
		"tenant_id", user.TenantID.String(),
		"role", string(role),
		"invited_by", callerID.String(),
	)

	return user.ID, nil
}

// isDuplicate recognizes duplicate-invite failures. Stores are expected to
// return sentinel.ErrAlreadyExists; text matching covers backends that only
// surface the raw constraint message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel.ErrAlreadyExists) {
		return true
	}
	return strings.Contains(err.Error(), "already")
}

func (s *Service) emitInvited(ctx context.Context, user *InvitedUser) {
	if s.emitter == nil {
		return
	}
	event := UserInvited{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		Role:      user.Role,
		InvitedBy: user.InvitedBy,
		RequestID: requestcontext.RequestID(ctx),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode invite event", "error", err)
		return
	}
	if err := s.emitter.ProduceAsync(&producer.Message{
		Topic: TopicUserInvited,
		Key:   []byte(user.TenantID.String()),
		Value: payload,
	}); err != nil {
		// Delivery is best-effort; the invite itself already succeeded.
		s.logger.ErrorContext(ctx, "failed to emit invite event", "error", err)
	}
}
