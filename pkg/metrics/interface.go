package metrics

import "time"

// MetricsCollector is the interface for metrics collection in sempctl.
// This interface allows for easy mocking in tests.
type MetricsCollector interface {
	// RecordRequest records one SEMP exchange. code is 0 when no response
	// was received.
	RecordRequest(operation string, code int, elapsed time.Duration)
	// SetOpenContexts publishes the number of open management contexts.
	SetOpenContexts(n int)

	// Utility
	IsEnabled() bool
}

// Ensure Collector implements MetricsCollector
var _ MetricsCollector = (*Collector)(nil)
var _ MetricsCollector = (*MockCollector)(nil)
