package management

import (
	"context"

	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
)

func (s *Service) Discover(ctx context.Context, id registry.ConnectionID) (*models.DestinationData, error) {
	mc, err := s.contexts.Lookup(id)
	if err != nil {
		return nil, err
	}
	return s.client.Discover(ctx, mc)
}
