package management

import (
	"context"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
)

// GetTopicInfo fails with semp.ErrAliasNotFound when topic aliases are on and
// topicName was not returned by a previous Discover on the same connection.
func (s *Service) GetTopicInfo(ctx context.Context, id registry.ConnectionID, topicName string) (*models.Properties, error) {
	mc, err := s.contexts.Lookup(id)
	if err != nil {
		return nil, err
	}
	return s.client.GetTopicInfo(ctx, mc, topicName)
}
