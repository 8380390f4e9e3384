// Package auth provides JWT bearer authentication middleware and the typed
// principal it places in request context.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "mobiq/pkg/domain"
	"mobiq/pkg/requestcontext"
)

// Principal is the authenticated caller as seen by handlers. Role here is the
// caller's platform-level role claim; per-tenant roles come from memberships.
type Principal struct {
	UserID    id.UserID
	SessionID string
	Role      id.Role
	Email     string
}

// Claims are the raw string claims a TokenValidator extracts from a bearer token.
type Claims struct {
	UserID    string
	SessionID string
	Role      string
	Email     string
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type contextKey int

const principalKey contextKey = iota

// WithPrincipal stores the principal in the context. Exported for tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated principal, or nil if the request did
// not pass through RequireAuth.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey).(*Principal); ok {
		return p
	}
	return nil
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// parsePrincipal converts string claims to a typed principal.
// Returns an error if any claim has an invalid format.
func parsePrincipal(claims *Claims) (*Principal, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("missing sid claim")
	}
	return &Principal{
		UserID:    userID,
		SessionID: claims.SessionID,
		Role:      id.Role(claims.Role),
		Email:     claims.Email,
	}, nil
}

// RequireAuth returns middleware that validates bearer tokens and populates
// context with the typed principal.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			principal, err := parsePrincipal(claims)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed token claims",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

// RequireAdmin returns middleware that rejects callers whose role claim is not
// admin or superadmin. Must run after RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal := GetPrincipal(ctx)
			if principal == nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			if !principal.Role.IsAdmin() {
				logger.WarnContext(ctx, "forbidden - admin role required",
					"user_id", principal.UserID.String(),
					"role", string(principal.Role),
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
