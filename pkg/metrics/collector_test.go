package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// Constructor Tests
// ========================================

func TestNewCollector(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantEnabled bool
		wantBuckets int
	}{
		{
			name:        "with_custom_config",
			config:      &Config{Enabled: true, Buckets: []float64{0.1, 1}},
			wantEnabled: true,
			wantBuckets: 2,
		},
		{
			name:        "with_nil_config",
			config:      nil,
			wantEnabled: true,
			wantBuckets: len(DefaultConfig().Buckets),
		},
		{
			name:        "with_disabled_config",
			config:      &Config{Enabled: false},
			wantEnabled: false,
			wantBuckets: len(DefaultConfig().Buckets),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(tt.config)

			if c.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", c.IsEnabled(), tt.wantEnabled)
			}
			if len(c.config.Buckets) != tt.wantBuckets {
				t.Errorf("len(Buckets) = %d, want %d", len(c.config.Buckets), tt.wantBuckets)
			}
			if c.Registry() == nil {
				t.Error("registry not initialized")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.Enabled {
		t.Error("DefaultConfig().Enabled should be true")
	}
	if len(config.Buckets) == 0 {
		t.Error("DefaultConfig().Buckets should not be empty")
	}
}

// ========================================
// Request Metrics Tests
// ========================================

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector(nil)

	c.RecordRequest("list_queues", 200, 20*time.Millisecond)
	c.RecordRequest("list_queues", 200, 30*time.Millisecond)
	c.RecordRequest("list_queues", 401, 5*time.Millisecond)
	c.RecordRequest("queue_info", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("list_queues", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("list_queues", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("queue_info", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestCollector_RequestsTotalExposition(t *testing.T) {
	c := NewCollector(nil)
	c.RecordRequest("topic_info", 200, 10*time.Millisecond)

	expected := `
# HELP sempctl_semp_requests_total SEMP requests by operation and HTTP status code (0 when no response was received).
# TYPE sempctl_semp_requests_total counter
sempctl_semp_requests_total{code="200",operation="topic_info"} 1
`
	err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "sempctl_semp_requests_total")
	require.NoError(t, err)
}

func TestCollector_SetOpenContexts(t *testing.T) {
	c := NewCollector(nil)

	c.SetOpenContexts(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.openContexts))

	c.SetOpenContexts(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.openContexts))
}

func TestCollector_DisabledRecordsNothing(t *testing.T) {
	c := NewCollector(&Config{Enabled: false})

	c.RecordRequest("list_queues", 200, time.Millisecond)
	c.SetOpenContexts(5)

	assert.Equal(t, 0, testutil.CollectAndCount(c.requests))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.openContexts))
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := NewCollector(nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordRequest("list_topics", 200, time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100.0, testutil.ToFloat64(c.requests.WithLabelValues("list_topics", "200")))
}

// ========================================
// Exposition Tests
// ========================================

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(nil)
	c.RecordRequest("list_queues", 200, time.Millisecond)
	c.SetOpenContexts(2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `sempctl_semp_requests_total{code="200",operation="list_queues"} 1`)
	assert.Contains(t, body, "sempctl_open_contexts 2")
	assert.Contains(t, body, "sempctl_semp_request_duration_seconds_bucket")
}

func TestCollector_WriteText(t *testing.T) {
	c := NewCollector(nil)
	c.RecordRequest("queue_info", 400, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE sempctl_semp_requests_total counter")
	assert.Contains(t, out, `sempctl_semp_requests_total{code="400",operation="queue_info"} 1`)
	assert.Contains(t, out, "sempctl_open_contexts 0")
}

// ========================================
// Mock Tests
// ========================================

func TestMockCollector(t *testing.T) {
	m := NewMockCollector()
	require.True(t, m.IsEnabled())

	m.RecordRequest("list_queues", 200, time.Millisecond)
	m.RecordRequest("queue_info", 400, time.Millisecond)
	m.RecordRequest("list_queues", 200, time.Millisecond)
	m.SetOpenContexts(4)

	assert.Equal(t, 2, m.RequestCount("list_queues"))
	assert.Equal(t, 1, m.RequestCount("queue_info"))
	assert.Len(t, m.Requests(), 3)
	assert.Equal(t, 400, m.Requests()[1].Code)
	assert.Equal(t, 4, m.OpenContexts())

	m.Clear()
	assert.Empty(t, m.Requests())
	assert.Equal(t, 0, m.OpenContexts())
}
