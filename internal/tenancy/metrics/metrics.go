package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TenantSwitches   prometheus.Counter
	SelectionRepairs prometheus.Counter
	ResolveDuration  prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		TenantSwitches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mobiq_tenant_switches_total",
			Help: "Total number of active-tenant switches",
		}),
		SelectionRepairs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mobiq_tenant_selection_repairs_total",
			Help: "Total number of persisted selections replaced because they matched no membership",
		}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mobiq_tenant_resolve_duration_seconds",
			Help:    "Duration of tenant resolution (membership fetch + metadata join)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementTenantSwitches() {
	if m != nil {
		m.TenantSwitches.Inc()
	}
}

func (m *Metrics) IncrementSelectionRepairs() {
	if m != nil {
		m.SelectionRepairs.Inc()
	}
}

func (m *Metrics) ObserveResolve(start time.Time) {
	if m != nil {
		m.ResolveDuration.Observe(time.Since(start).Seconds())
	}
}
