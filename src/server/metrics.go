package server

import (
	"sync"
	"time"
)

// Metrics aggregates per-route response timings in memory. It backs the
// /api/performance endpoint and resets on restart.
type Metrics struct {
	mu      sync.Mutex
	started time.Time
	routes  map[string]*routeStats
}

type routeStats struct {
	count     int64
	slowCount int64
	totalMs   float64
	maxMs     float64
}

// RouteReport is the per-route slice of the performance snapshot.
type RouteReport struct {
	Count     int64   `json:"count"`
	SlowCount int64   `json:"slow_count"`
	AvgMs     float64 `json:"avg_ms"`
	MaxMs     float64 `json:"max_ms"`
}

// PerformanceReport is the /api/performance payload.
type PerformanceReport struct {
	UptimeSeconds float64                `json:"uptime_seconds"`
	TotalRequests int64                  `json:"total_requests"`
	Routes        map[string]RouteReport `json:"routes"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		started: time.Now(),
		routes:  make(map[string]*routeStats),
	}
}

// Record adds one completed request to the route's aggregate.
func (m *Metrics) Record(method, path string, elapsed time.Duration, slow bool) {
	key := method + " " + path
	ms := float64(elapsed) / float64(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.routes[key]
	if !ok {
		stats = &routeStats{}
		m.routes[key] = stats
	}

	stats.count++
	stats.totalMs += ms
	if ms > stats.maxMs {
		stats.maxMs = ms
	}
	if slow {
		stats.slowCount++
	}
}

// Snapshot returns a copy of the current aggregates.
func (m *Metrics) Snapshot() PerformanceReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := PerformanceReport{
		UptimeSeconds: time.Since(m.started).Seconds(),
		Routes:        make(map[string]RouteReport, len(m.routes)),
	}

	for key, stats := range m.routes {
		report.TotalRequests += stats.count
		report.Routes[key] = RouteReport{
			Count:     stats.count,
			SlowCount: stats.slowCount,
			AvgMs:     stats.totalMs / float64(stats.count),
			MaxMs:     stats.maxMs,
		}
	}

	return report
}
