// Package scope provides the tenant-scope invalidation barrier and the
// epoch-validated cache built on it. Switching tenants bumps the barrier,
// which atomically marks every tenant-scoped cached read stale; responses
// captured under an older epoch are discarded rather than rendered.
package scope

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	id "mobiq/pkg/domain"
)

var cacheReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mobiq_scope_cache_reads_total",
	Help: "Scope cache reads by outcome",
}, []string{"outcome"})

// Barrier is a process-wide epoch counter for tenant-scoped state. Every
// cached tenant-scoped read is stamped with the epoch it was captured under.
type Barrier struct {
	epoch atomic.Uint64
}

// NewBarrier returns a barrier starting at epoch 1 so the zero value of a
// stamp never matches a live epoch.
func NewBarrier() *Barrier {
	b := &Barrier{}
	b.epoch.Store(1)
	return b
}

// Current returns the live epoch.
func (b *Barrier) Current() uint64 {
	return b.epoch.Load()
}

// Bump invalidates all tenant-scoped cached state and returns the new epoch.
func (b *Barrier) Bump() uint64 {
	return b.epoch.Add(1)
}

type entry struct {
	tenantID  id.TenantID
	epoch     uint64
	expiresAt time.Time
	value     any
}

// Cache is an epoch-validated cache for tenant-scoped query results. A hit
// requires the stored tenant, epoch, and TTL all to match; anything captured
// before the last barrier bump, or under a different tenant, is a miss and is
// evicted. Partial invalidation is deliberately impossible.
type Cache struct {
	barrier *Barrier
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]entry
}

func NewCache(barrier *Barrier, ttl time.Duration) *Cache {
	return &Cache{
		barrier: barrier,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key if it was captured for tenantID under
// the live epoch and has not expired.
func (c *Cache) Get(key string, tenantID id.TenantID, now time.Time) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		cacheReads.WithLabelValues("miss").Inc()
		return nil, false
	}
	if e.epoch != c.barrier.Current() || e.tenantID != tenantID || now.After(e.expiresAt) {
		delete(c.entries, key)
		cacheReads.WithLabelValues("evicted").Inc()
		return nil, false
	}
	cacheReads.WithLabelValues("hit").Inc()
	return e.value, true
}

// Put stores a value captured under the given epoch. If the barrier has moved
// since the read was issued the value is stale and silently dropped - this is
// the guard against a slow fetch for tenant A resolving after a switch to
// tenant B.
func (c *Cache) Put(key string, tenantID id.TenantID, capturedEpoch uint64, now time.Time, value any) {
	if capturedEpoch != c.barrier.Current() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		tenantID:  tenantID,
		epoch:     capturedEpoch,
		expiresAt: now.Add(c.ttl),
		value:     value,
	}
}
