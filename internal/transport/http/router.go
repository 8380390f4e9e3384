// Package httptransport assembles the HTTP surface: middleware stack,
// authenticated route groups, the admin group, and the operational
// endpoints. Handlers stay in their domain packages; this package only
// mounts them.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	guardhandler "mobiq/internal/guard/handler"
	impersonationhandler "mobiq/internal/impersonation/handler"
	invitehandler "mobiq/internal/invite/handler"
	moduleshandler "mobiq/internal/modules/handler"
	navigationhandler "mobiq/internal/navigation/handler"
	"mobiq/internal/platform/health"
	simulationhandler "mobiq/internal/simulation/handler"
	tenancyhandler "mobiq/internal/tenancy/handler"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

// Deps collects everything the router mounts.
type Deps struct {
	Tenancy       *tenancyhandler.Handler
	Guard         *guardhandler.Handler
	Modules       *moduleshandler.Handler
	Simulations   *simulationhandler.Handler
	Impersonation *impersonationhandler.Handler
	Navigation    *navigationhandler.Handler
	Invite        *invitehandler.Handler
	Health        *health.Handler

	Validator authmw.TokenValidator
	Logger    *slog.Logger
}

// NewRouter wires all endpoints with the shared middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(d.Logger))
	r.Use(request.Timeout(30 * time.Second))
	r.Use(request.ContentTypeJSON)

	// Operational endpoints, no auth.
	d.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// The invite endpoint carries its own auth and CORS contract.
	d.Invite.Register(r)

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(d.Validator, d.Logger))

		d.Tenancy.Register(r)
		d.Guard.Register(r)
		d.Modules.Register(r)
		d.Simulations.Register(r)
		d.Navigation.Register(r)
		d.Impersonation.Register(r)

		// Admin-only operations.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAdmin(d.Logger))

			d.Modules.RegisterAdmin(r)
			d.Impersonation.RegisterAdmin(r)
		})
	})

	return r
}
