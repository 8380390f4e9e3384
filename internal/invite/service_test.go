package invite_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"mobiq/internal/invite"
	"mobiq/internal/invite/mocks"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/sentinel"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestInviteRequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	for _, role := range []id.Role{id.RoleEmployee, id.RoleManager, id.RoleHR} {
		_, err := svc.Invite(context.Background(), id.NewUserID(), role, invite.Command{
			TenantID: id.NewTenantID(),
			Email:    "new@example.com",
		})
		if !dErrors.HasCode(err, dErrors.CodeForbidden) {
			t.Fatalf("expected forbidden for role %s, got %v", role, err)
		}
	}
}

func TestInviteValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	caller := id.NewUserID()

	cases := []struct {
		name string
		cmd  invite.Command
	}{
		{"empty email", invite.Command{TenantID: id.NewTenantID()}},
		{"malformed email", invite.Command{TenantID: id.NewTenantID(), Email: "not-an-email"}},
		{"missing tenant", invite.Command{Email: "new@example.com"}},
		{"unknown role", invite.Command{TenantID: id.NewTenantID(), Email: "new@example.com", Role: "owner"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Invite(context.Background(), caller, id.RoleAdmin, tc.cmd)
			if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
				t.Fatalf("expected bad request, got %v", err)
			}
		})
	}
}

func TestInviteSuccessEmitsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	tenantID := id.NewTenantID()
	caller := id.NewUserID()

	directory.EXPECT().
		CreateInvited(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *invite.InvitedUser) error {
			if user.Email != "new@example.com" {
				t.Fatalf("expected normalized email, got %q", user.Email)
			}
			if user.Role != id.RoleEmployee {
				t.Fatalf("expected default employee role, got %s", user.Role)
			}
			if user.InvitedBy != caller {
				t.Fatalf("expected inviter recorded")
			}
			return nil
		})
	emitter.EXPECT().ProduceAsync(gomock.Any()).Return(nil)

	userID, err := svc.Invite(context.Background(), caller, id.RoleAdmin, invite.Command{
		TenantID: tenantID,
		Email:    "  New@Example.COM ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID.IsNil() {
		t.Fatalf("expected a user id")
	}
}

func TestInviteDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	directory.EXPECT().
		CreateInvited(gomock.Any(), gomock.Any()).
		Return(sentinel.ErrAlreadyExists)

	_, err := svc.Invite(context.Background(), id.NewUserID(), id.RoleSuperadmin, invite.Command{
		TenantID: id.NewTenantID(),
		Email:    "dup@example.com",
	})
	if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad request for duplicate, got %v", err)
	}

	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) || domainErr.Message != "A user with this email has already been invited" {
		t.Fatalf("expected friendly duplicate message, got %v", err)
	}
}

func TestInviteDuplicateByMessageText(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	directory.EXPECT().
		CreateInvited(gomock.Any(), gomock.Any()).
		Return(errors.New("user already registered"))

	_, err := svc.Invite(context.Background(), id.NewUserID(), id.RoleAdmin, invite.Command{
		TenantID: id.NewTenantID(),
		Email:    "dup@example.com",
	})
	if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad request for text-matched duplicate, got %v", err)
	}
}

func TestInviteStoreFailureIsSanitized(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	directory.EXPECT().
		CreateInvited(gomock.Any(), gomock.Any()).
		Return(errors.New("pq: connection refused host=10.0.0.5"))

	_, err := svc.Invite(context.Background(), id.NewUserID(), id.RoleAdmin, invite.Command{
		TenantID: id.NewTenantID(),
		Email:    "new@example.com",
	})
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}

	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) || domainErr.Message != "An unexpected error occurred" {
		t.Fatalf("store detail must not reach the message, got %v", err)
	}
}

func TestInviteEmitFailureDoesNotFailInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	emitter := mocks.NewMockEventEmitter(ctrl)
	svc := invite.New(directory, emitter, testLogger())

	directory.EXPECT().CreateInvited(gomock.Any(), gomock.Any()).Return(nil)
	emitter.EXPECT().ProduceAsync(gomock.Any()).Return(errors.New("kafka down"))

	_, err := svc.Invite(context.Background(), id.NewUserID(), id.RoleAdmin, invite.Command{
		TenantID: id.NewTenantID(),
		Email:    "new@example.com",
	})
	if err != nil {
		t.Fatalf("event emission is best-effort, invite must succeed: %v", err)
	}
}
