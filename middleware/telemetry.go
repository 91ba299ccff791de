package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kilocode/kilozed/api"
)

// Metrics holds resolution counts and duration statistics per language
// server id.
type Metrics struct {
	mu      sync.RWMutex
	servers map[api.LanguageServerID]*ServerMetrics
}

// ServerMetrics holds metrics for a single language server id.
type ServerMetrics struct {
	Count   atomic.Int64
	Errors  atomic.Int64
	TotalNs atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{servers: make(map[api.LanguageServerID]*ServerMetrics)}
}

func (m *Metrics) getOrCreate(id api.LanguageServerID) *ServerMetrics {
	m.mu.RLock()
	sm, ok := m.servers[id]
	m.mu.RUnlock()
	if ok {
		return sm
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sm, ok := m.servers[id]; ok {
		return sm
	}
	sm = &ServerMetrics{}
	m.servers[id] = sm
	return sm
}

// Snapshot returns a point-in-time copy of all per-server metrics.
func (m *Metrics) Snapshot() map[api.LanguageServerID]ServerSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[api.LanguageServerID]ServerSnapshot, len(m.servers))
	for id, sm := range m.servers {
		snap[id] = ServerSnapshot{
			Count:     sm.Count.Load(),
			Errors:    sm.Errors.Load(),
			TotalTime: time.Duration(sm.TotalNs.Load()),
		}
	}
	return snap
}

// ServerSnapshot is a point-in-time copy of metrics for one server id.
type ServerSnapshot struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
}

// Telemetry returns middleware that collects resolution count and latency
// metrics.
func Telemetry(metrics *Metrics) Middleware {
	return func(next Resolver) Resolver {
		return func(ctx context.Context, id api.LanguageServerID, wt api.Worktree) (*api.Command, error) {
			sm := metrics.getOrCreate(id)
			start := time.Now()
			cmd, err := next(ctx, id, wt)
			elapsed := time.Since(start)

			sm.Count.Add(1)
			sm.TotalNs.Add(int64(elapsed))
			if err != nil {
				sm.Errors.Add(1)
			}

			return cmd, err
		}
	}
}
