package semp

import (
	"context"
	"net/http"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/rs/zerolog/log"
)

// GetQueueInfo returns the configuration of queueName. Info lookups are best
// effort: bad status codes, transport errors and undecodable bodies are logged
// and yield an empty map.
func (c *Client) GetQueueInfo(ctx context.Context, mc *Context, queueName string) *models.Properties {
	data, ok := detail[QueueData](ctx, c.transport, mc.QueueInfoRequest(queueName), queueName)
	if !ok {
		return models.NewProperties()
	}
	return data.Properties()
}

// GetTopicInfo returns the configuration of topicName, degrading to an empty
// map like GetQueueInfo. With topic aliases enabled, topicName is a logical
// name that a previous discovery must have recorded; otherwise
// ErrAliasNotFound is returned and no request is made.
func (c *Client) GetTopicInfo(ctx context.Context, mc *Context, topicName string) (*models.Properties, error) {
	physical := topicName
	if mc.TopicAliasesEnabled() {
		resolved, err := mc.Aliases().Resolve(topicName)
		if err != nil {
			return nil, err
		}
		physical = resolved
	}

	data, ok := detail[TopicEndpointData](ctx, c.transport, mc.TopicInfoRequest(physical), topicName)
	if !ok {
		return models.NewProperties(), nil
	}
	return data.Properties(), nil
}

func detail[T any](ctx context.Context, tr Transport, tmpl RequestTemplate, resource string) (*T, bool) {
	resp, err := exchange(ctx, tr, tmpl)
	if err != nil {
		log.Error().Err(err).Str("operation", string(tmpl.Operation)).Str("resource", resource).
			Str("reason", "transport").Msg("No information available")
		return nil, false
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Str("operation", string(tmpl.Operation)).Str("resource", resource).
			Str("reason", "status").Int("status", resp.StatusCode).Str("detail", metaDetail(resp.Body)).
			Msg("Bad return code received from SEMP, no information available")
		return nil, false
	}

	data, err := decodeEnvelope[T](resp.Body)
	if err != nil {
		log.Error().Err(err).Str("operation", string(tmpl.Operation)).Str("resource", resource).
			Str("reason", "decode").Msg("No information available")
		return nil, false
	}
	return &data, true
}
