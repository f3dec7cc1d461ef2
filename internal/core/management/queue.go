package management

import (
	"context"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
)

func (s *Service) GetQueueInfo(ctx context.Context, id registry.ConnectionID, queueName string) (*models.Properties, error) {
	mc, err := s.contexts.Lookup(id)
	if err != nil {
		return nil, err
	}
	return s.client.GetQueueInfo(ctx, mc, queueName), nil
}
