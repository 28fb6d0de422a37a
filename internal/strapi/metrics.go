package strapi

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
)

// Metrics holds lightweight counters for HTTP activity against the CMS.
type Metrics struct {
	TotalRequests atomic.Int64
	TotalRetries  atomic.Int64

	ReadRequests  atomic.Int64 // GET
	WriteRequests atomic.Int64 // POST/PUT/DELETE

	mu        sync.Mutex
	status2xx int64
	status4xx int64
	status429 int64
	status5xx int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics { return &Metrics{} }

// IncRequest counts one outgoing request by method class.
func (m *Metrics) IncRequest(method string) {
	m.TotalRequests.Add(1)
	switch strings.ToUpper(method) {
	case http.MethodGet:
		m.ReadRequests.Add(1)
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		m.WriteRequests.Add(1)
	}
}

// IncRetry counts one retried attempt.
func (m *Metrics) IncRetry() { m.TotalRetries.Add(1) }

// IncStatus counts a response by status class.
func (m *Metrics) IncStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case code == 429:
		m.status429++
	case code >= 500:
		m.status5xx++
	case code >= 400:
		m.status4xx++
	case code >= 200 && code < 300:
		m.status2xx++
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TotalRequests int64
	TotalRetries  int64
	ReadRequests  int64
	WriteRequests int64
	Status2xx     int64
	Status4xx     int64
	Status429     int64
	Status5xx     int64
}

// Snapshot returns a consistent copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		TotalRequests: m.TotalRequests.Load(),
		TotalRetries:  m.TotalRetries.Load(),
		ReadRequests:  m.ReadRequests.Load(),
		WriteRequests: m.WriteRequests.Load(),
		Status2xx:     m.status2xx,
		Status4xx:     m.status4xx,
		Status429:     m.status429,
		Status5xx:     m.status5xx,
	}
}
