package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"mobiq/internal/modules/service"
	"mobiq/internal/modules/store"
	id "mobiq/pkg/domain"
)

type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	tenantID id.TenantID
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewInMemory())
	s.tenantID = id.NewTenantID()

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterAdmin(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestRegistryCatalog() {
	rec := s.do(http.MethodGet, "/modules", "")
	s.Equal(http.StatusOK, rec.Code)

	var resp RegistryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Modules, 20)
	s.NotEmpty(resp.Routes)
	s.Equal("simulations", string(resp.Modules[0].Key))
	s.Equal("Simulations", resp.Modules[0].Label)
}

func (s *HandlerSuite) TestListEmptyTenant() {
	rec := s.do(http.MethodGet, "/tenants/"+s.tenantID.String()+"/modules", "")
	s.Equal(http.StatusOK, rec.Code)

	var resp TenantModulesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotNil(resp.Modules)
	s.Empty(resp.Modules)
}

func (s *HandlerSuite) TestSetEnabledRoundTrip() {
	rec := s.do(http.MethodPut, "/tenants/"+s.tenantID.String()+"/modules/tax_engine", `{"is_enabled": false}`)
	s.Equal(http.StatusOK, rec.Code)

	list := s.do(http.MethodGet, "/tenants/"+s.tenantID.String()+"/modules", "")
	var resp TenantModulesResponse
	s.Require().NoError(json.Unmarshal(list.Body.Bytes(), &resp))
	s.Require().Len(resp.Modules, 1)
	s.Equal("tax_engine", string(resp.Modules[0].Key))
	s.False(resp.Modules[0].Enabled)
}

func (s *HandlerSuite) TestSetEnabledUnknownKey() {
	rec := s.do(http.MethodPut, "/tenants/"+s.tenantID.String()+"/modules/bogus", `{"is_enabled": true}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSetEnabledMissingFlag() {
	rec := s.do(http.MethodPut, "/tenants/"+s.tenantID.String()+"/modules/tax_engine", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestBadTenantID() {
	rec := s.do(http.MethodGet, "/tenants/not-a-uuid/modules", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
