package jwttoken

import (
	"testing"
	"time"

	id "mobiq/pkg/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", "mobiq-test", time.Hour)
	userID := id.NewUserID()

	token, err := svc.Generate(userID, "sess-1", id.RoleManager, "m@example.com", time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("UserID = %q, want %q", claims.UserID, userID.String())
	}
	if claims.SessionID != "sess-1" || claims.Role != "manager" || claims.Email != "m@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := New("secret", "mobiq-test", time.Hour)

	token, err := svc.Generate(id.NewUserID(), "sess-1", id.RoleAdmin, "", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestWrongKeyRejected(t *testing.T) {
	signer := New("secret-a", "mobiq-test", time.Hour)
	verifier := New("secret-b", "mobiq-test", time.Hour)

	token, err := signer.Generate(id.NewUserID(), "sess-1", id.RoleAdmin, "", time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatalf("expected token signed with a different key to be rejected")
	}
}

func TestWrongIssuerRejected(t *testing.T) {
	signer := New("secret", "other-issuer", time.Hour)
	verifier := New("secret", "mobiq-test", time.Hour)

	token, err := signer.Generate(id.NewUserID(), "sess-1", id.RoleAdmin, "", time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatalf("expected token from a different issuer to be rejected")
	}
}
