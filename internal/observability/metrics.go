package observability

import (
	"sync"
	"time"
)

// RouteKey identifies one request counter bucket.
type RouteKey struct {
	Method string
	Path   string
	Status int
}

// Metrics keeps in-process request and error counters behind a mutex. There
// is no exporter; counters are read through accessors.
type Metrics struct {
	mu       sync.Mutex
	requests map[RouteKey]int64
	errors   map[string]int64
	latency  map[RouteKey]time.Duration
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[RouteKey]int64),
		errors:   make(map[string]int64),
		latency:  make(map[RouteKey]time.Duration),
	}
}

// RecordRequest counts one finished request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := RouteKey{Method: method, Path: path, Status: status}
	m.mu.Lock()
	m.requests[key]++
	m.latency[key] += duration
	m.mu.Unlock()
}

// RecordError counts one failed request by route and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.errors[method+" "+path+" "+code]++
	m.mu.Unlock()
}

// RequestCount returns the counter for one bucket.
func (m *Metrics) RequestCount(method, path string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[RouteKey{Method: method, Path: path, Status: status}]
}

// ErrorCount returns the counter for one route and error code.
func (m *Metrics) ErrorCount(method, path, code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[method+" "+path+" "+code]
}
