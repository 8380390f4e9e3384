package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"mobiq/internal/tenancy/models"
	"mobiq/internal/tenancy/preferences"
	"mobiq/internal/tenancy/scope"
	"mobiq/internal/tenancy/service"
	"mobiq/internal/tenancy/store"
	id "mobiq/pkg/domain"
	authmw "mobiq/pkg/platform/middleware/auth"
)

type HandlerSuite struct {
	suite.Suite
	router  http.Handler
	barrier *scope.Barrier
	userID  id.UserID
	tenants []id.TenantID
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	memberships := store.NewInMemoryMemberships()
	tenants := store.NewInMemoryTenants()
	s.barrier = scope.NewBarrier()
	s.userID = id.NewUserID()
	s.tenants = nil

	for i, name := range []string{"Acme", "Globex"} {
		tenantID := id.NewTenantID()
		s.tenants = append(s.tenants, tenantID)
		s.Require().NoError(tenants.Save(context.Background(), &models.Tenant{
			ID:   tenantID,
			Name: name,
			Slug: strings.ToLower(name),
		}))
		s.Require().NoError(memberships.Create(context.Background(), &models.Membership{
			ID:        id.NewMembershipID(),
			UserID:    s.userID,
			TenantID:  tenantID,
			Role:      id.RoleAdmin,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	svc := service.New(memberships, tenants, preferences.NewInMemory(), s.barrier, service.WithLogger(logger))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Use(s.injectPrincipal)
	h.Register(r)
	s.router = r
}

// injectPrincipal stands in for the auth middleware.
func (s *HandlerSuite) injectPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := authmw.WithPrincipal(r.Context(), &authmw.Principal{
			UserID:    s.userID,
			SessionID: "sess-1",
			Role:      id.RoleAdmin,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Profile-ID", "profile-1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestResolve() {
	rec := s.do(http.MethodGet, "/me/tenants", "")
	s.Equal(http.StatusOK, rec.Code)

	var res models.Resolution
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Len(res.Memberships, 2)
	s.Equal(s.tenants[0], res.ActiveTenantID)
	s.Equal("Acme", res.Memberships[0].Name)
}

func (s *HandlerSuite) TestMissingProfileHeader() {
	req := httptest.NewRequest(http.MethodGet, "/me/tenants", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSwitchTenant() {
	before := s.barrier.Current()

	rec := s.do(http.MethodPost, "/me/tenants/active", `{"tenant_id": "`+s.tenants[1].String()+`"}`)
	s.Equal(http.StatusOK, rec.Code)

	var res models.Resolution
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Equal(s.tenants[1], res.ActiveTenantID)
	s.Equal(before+1, s.barrier.Current(), "switch must bump the scope barrier")
}

func (s *HandlerSuite) TestSwitchToForeignTenant() {
	rec := s.do(http.MethodPost, "/me/tenants/active", `{"tenant_id": "`+id.NewTenantID().String()+`"}`)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestSwitchMissingTenantID() {
	rec := s.do(http.MethodPost, "/me/tenants/active", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestPreferencesRoundTrip() {
	rec := s.do(http.MethodPut, "/me/preferences", `{"theme": "dark"}`)
	s.Equal(http.StatusOK, rec.Code)

	get := s.do(http.MethodGet, "/me/preferences", "")
	s.Equal(http.StatusOK, get.Code)

	var prefs models.Preferences
	s.Require().NoError(json.Unmarshal(get.Body.Bytes(), &prefs))
	s.Equal("dark", prefs.Theme)
}

func (s *HandlerSuite) TestPreferencesRejectsUnknownTheme() {
	rec := s.do(http.MethodPut, "/me/preferences", `{"theme": "neon"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
