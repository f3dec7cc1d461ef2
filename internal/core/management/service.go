package management

import (
	"context"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/core/semp"
	"github.com/ottermq/sempctl/pkg/metrics"
)

// QueueManager is the contract a messaging host uses to browse the
// destinations of a broker connection through its management plane.
type QueueManager interface {
	/* Lifecycle */

	// Open validates props and binds a management context to id.
	Open(ctx context.Context, props ConnectionProperties, id registry.ConnectionID) error
	// Close releases the management context of id. Unknown ids are ignored.
	Close(id registry.ConnectionID)

	/* Discovery */

	// Discover lists the queues and topics visible on the connection's VPN.
	Discover(ctx context.Context, id registry.ConnectionID) (*models.DestinationData, error)

	/* Info */

	// GetQueueInfo returns the configuration of a queue, or an empty map when
	// the broker has no information for it.
	GetQueueInfo(ctx context.Context, id registry.ConnectionID, queueName string) (*models.Properties, error)
	// GetTopicInfo returns the configuration of a topic, or an empty map when
	// the broker has no information for it.
	GetTopicInfo(ctx context.Context, id registry.ConnectionID, topicName string) (*models.Properties, error)
}

var _ QueueManager = (*Service)(nil)

type Service struct {
	client   *semp.Client
	contexts *registry.Registry
	metrics  metrics.MetricsCollector
}

type Option func(*Service)

// WithMetrics reports every SEMP exchange and the number of open contexts
// to collector.
func WithMetrics(collector metrics.MetricsCollector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

func NewService(transport semp.Transport, opts ...Option) *Service {
	s := &Service{contexts: registry.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics != nil && s.metrics.IsEnabled() {
		transport = semp.Instrument(transport, s.metrics)
	}
	s.client = semp.NewClient(transport)
	return s
}

// OpenContexts returns the number of connections with an open management context.
func (s *Service) OpenContexts() int {
	return s.contexts.Len()
}

func (s *Service) reportOpenContexts() {
	if s.metrics != nil {
		s.metrics.SetOpenContexts(s.contexts.Len())
	}
}
