package semp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Client runs the discovery and info protocols over a Transport. It holds no
// per-connection state: everything connection specific lives in the Context.
type Client struct {
	transport Transport
}

func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Discover lists queues and topics of the context's VPN. Both lists are fetched
// concurrently; the first failure cancels the other and no partial result is
// returned.
func (c *Client) Discover(ctx context.Context, mc *Context) (*models.DestinationData, error) {
	log.Debug().Str("vpn", mc.PartitionID()).Msg("Discovering destinations")

	var data models.DestinationData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		queues, err := c.ListQueues(gctx, mc)
		if err != nil {
			return err
		}
		data.Queues = queues
		return nil
	})
	g.Go(func() error {
		topics, err := c.ListTopics(gctx, mc)
		if err != nil {
			return err
		}
		data.Topics = topics
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListQueues returns the queue names of the VPN as a sorted set.
func (c *Client) ListQueues(ctx context.Context, mc *Context) ([]models.ResourceSummary, error) {
	queues, err := list[QueueData](ctx, c.transport, mc.ListQueuesRequest())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(queues))
	for _, q := range queues {
		if q.QueueName == "" {
			skipUnnamed(mc.ListQueuesRequest().Operation)
			continue
		}
		log.Debug().Str("queue", q.QueueName).Msg("Discovered queue")
		names = append(names, q.QueueName)
	}
	return models.SortedSummaries(names), nil
}

// ListTopics returns the topic names of the VPN as a sorted set. With topic
// aliases enabled the names are the logical JNDI names and the alias table of
// mc is refreshed from the same response.
func (c *Client) ListTopics(ctx context.Context, mc *Context) ([]models.ResourceSummary, error) {
	if mc.TopicAliasesEnabled() {
		return c.listTopicAliases(ctx, mc)
	}

	topics, err := list[TopicEndpointData](ctx, c.transport, mc.ListTopicsRequest())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		if t.TopicEndpointName == "" {
			skipUnnamed(mc.ListTopicsRequest().Operation)
			continue
		}
		log.Debug().Str("topic", t.TopicEndpointName).Msg("Discovered topic endpoint")
		names = append(names, t.TopicEndpointName)
	}
	return models.SortedSummaries(names), nil
}

func (c *Client) listTopicAliases(ctx context.Context, mc *Context) ([]models.ResourceSummary, error) {
	aliases, err := list[JndiTopicData](ctx, c.transport, mc.ListTopicAliasesRequest())
	if err != nil {
		return nil, err
	}

	entries := make([]AliasEntry, 0, len(aliases))
	names := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a.TopicName == "" || a.PhysicalName == "" {
			skipUnnamed(mc.ListTopicAliasesRequest().Operation)
			continue
		}
		log.Debug().Str("topic", a.TopicName).Str("physical", a.PhysicalName).Msg("Discovered topic alias")
		entries = append(entries, AliasEntry{LogicalName: a.TopicName, PhysicalName: a.PhysicalName})
		names = append(names, a.TopicName)
	}
	recordAliases(mc, entries)
	return models.SortedSummaries(names), nil
}

// skipUnnamed reports a list element without a name. Such elements are not
// destinations and are left out of the result.
func skipUnnamed(op Operation) {
	log.Warn().Str("operation", string(op)).Msg("Skipping SEMP list entry without a name")
}

// recordAliases is the only place the alias table is written.
func recordAliases(mc *Context, entries []AliasEntry) {
	mc.Aliases().Record(entries...)
	log.Debug().Str("vpn", mc.PartitionID()).Int("aliases", mc.Aliases().Len()).Msg("Topic alias table updated")
}

// list issues a list template and decodes the data array. Any status other
// than 200 is a DiscoveryFailure.
func list[T any](ctx context.Context, tr Transport, tmpl RequestTemplate) ([]T, error) {
	resp, err := exchange(ctx, tr, tmpl)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		df := &DiscoveryFailure{
			Operation:  tmpl.Operation,
			StatusCode: resp.StatusCode,
			Detail:     metaDetail(resp.Body),
		}
		log.Error().Str("operation", string(tmpl.Operation)).Int("status", resp.StatusCode).Str("detail", df.Detail).
			Msg("Bad return code received from SEMP")
		return nil, df
	}

	if next := nextPageURI(resp.Body); next != "" {
		log.Debug().Str("operation", string(tmpl.Operation)).Int("limit", MaxPageSize).
			Msg("SEMP list truncated, further pages are not fetched")
	}

	items, err := decodeEnvelope[[]T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tmpl.Operation, err)
	}
	return items, nil
}
