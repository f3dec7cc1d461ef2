package metrics

import (
	"sync"
	"time"
)

// RequestRecord is one call to MockCollector.RecordRequest.
type RequestRecord struct {
	Operation string
	Code      int
	Elapsed   time.Duration
}

// MockCollector is a simple mock implementation of MetricsCollector for testing.
type MockCollector struct {
	mu sync.RWMutex

	requests     []RequestRecord
	openContexts int

	enabled bool
}

// NewMockCollector creates a new mock collector.
func NewMockCollector() *MockCollector {
	return &MockCollector{enabled: true}
}

func (m *MockCollector) RecordRequest(operation string, code int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, RequestRecord{Operation: operation, Code: code, Elapsed: elapsed})
}

func (m *MockCollector) SetOpenContexts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openContexts = n
}

func (m *MockCollector) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Requests returns the recorded requests in call order.
func (m *MockCollector) Requests() []RequestRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RequestRecord, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns how many requests were recorded for operation.
func (m *MockCollector) RequestCount(operation string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.requests {
		if r.Operation == operation {
			n++
		}
	}
	return n
}

func (m *MockCollector) OpenContexts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.openContexts
}

// Clear drops everything recorded so far.
func (m *MockCollector) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.openContexts = 0
}
