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

	"mobiq/internal/simulation"
	"mobiq/internal/tenancy/scope"
	id "mobiq/pkg/domain"
	authmw "mobiq/pkg/platform/middleware/auth"
)

// staticResolver pins every caller to one tenant.
type staticResolver struct {
	tenantID id.TenantID
}

func (r *staticResolver) ActiveTenant(_ context.Context, _ id.UserID, _ id.ProfileID) (id.TenantID, id.Role, error) {
	return r.tenantID, id.RoleAdmin, nil
}

type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	tenantID id.TenantID
	userID   id.UserID
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.tenantID = id.NewTenantID()
	s.userID = id.NewUserID()

	auditStore := simulation.NewInMemoryAuditStore()
	barrier := scope.NewBarrier()
	svc := simulation.New(simulation.NewInMemoryStore(), auditStore,
		simulation.WithPublisher(simulation.NewPublisher(auditStore)),
		simulation.WithCache(scope.NewCache(barrier, time.Minute), barrier),
		simulation.WithLogger(logger),
	)

	h := New(svc, &staticResolver{tenantID: s.tenantID}, logger)
	r := chi.NewRouter()
	r.Use(s.injectPrincipal)
	h.Register(r)
	s.router = r
}

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

func (s *HandlerSuite) create(name string) simulation.Simulation {
	rec := s.do(http.MethodPost, "/simulations", `{"name": "`+name+`", "cost_total": 125000}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var sim simulation.Simulation
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &sim))
	return sim
}

func (s *HandlerSuite) TestCreateAndGet() {
	sim := s.create("Relocation Berlin")
	s.Equal(simulation.StatusDraft, sim.Status)
	s.Equal(s.tenantID, sim.TenantID)

	rec := s.do(http.MethodGet, "/simulations/"+sim.ID.String(), "")
	s.Equal(http.StatusOK, rec.Code)

	var got simulation.Simulation
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(sim.ID, got.ID)
	s.Equal(int64(125000), got.CostTotal)
}

func (s *HandlerSuite) TestCreateValidation() {
	rec := s.do(http.MethodPost, "/simulations", `{"cost_total": 10}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/simulations", `{"name": "x", "cost_total": -1}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestUpdate() {
	sim := s.create("Draft")

	rec := s.do(http.MethodPut, "/simulations/"+sim.ID.String(), `{"status": "running"}`)
	s.Equal(http.StatusOK, rec.Code)

	var got simulation.Simulation
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(simulation.StatusRunning, got.Status)

	empty := s.do(http.MethodPut, "/simulations/"+sim.ID.String(), `{}`)
	s.Equal(http.StatusBadRequest, empty.Code)
}

func (s *HandlerSuite) TestDeleteThenNotFound() {
	sim := s.create("Temp")

	rec := s.do(http.MethodDelete, "/simulations/"+sim.ID.String(), "")
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/simulations/"+sim.ID.String(), "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestAuditTrail() {
	sim := s.create("Audited")
	s.do(http.MethodPut, "/simulations/"+sim.ID.String(), `{"name": "Renamed"}`)

	rec := s.do(http.MethodGet, "/simulations/"+sim.ID.String()+"/audit", "")
	s.Equal(http.StatusOK, rec.Code)

	var entries []simulation.AuditEntry
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &entries))
	s.Require().Len(entries, 2)
	s.Equal(simulation.AuditCreated, entries[0].Action)
	s.Equal(simulation.AuditUpdated, entries[1].Action)
	s.Equal(s.userID, entries[0].ActorID)
}

func (s *HandlerSuite) TestBadSimulationID() {
	rec := s.do(http.MethodGet, "/simulations/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
