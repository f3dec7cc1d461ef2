package management

import (
	"context"

	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/core/semp"
	"github.com/rs/zerolog/log"
)

func (s *Service) Open(ctx context.Context, props ConnectionProperties, id registry.ConnectionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		log.Error().Err(err).Str("connection", id.String()).Msg("Refusing to open management context")
		return err
	}

	var opts []semp.ContextOption
	if props.TopicAliases {
		opts = append(opts, semp.WithTopicAliases())
	}
	mc := semp.NewContext(props.VPN, props.MgmtURL, props.MgmtUsername, props.MgmtPassword, opts...)
	s.contexts.Open(id, mc)
	s.reportOpenContexts()

	log.Info().
		Str("connection", id.String()).
		Str("vpn", props.VPN).
		Str("url", props.MgmtURL).
		Bool("topic_aliases", props.TopicAliases).
		Msg("Management context opened")
	return nil
}

func (s *Service) Close(id registry.ConnectionID) {
	s.contexts.Close(id)
	s.reportOpenContexts()
	log.Debug().Str("connection", id.String()).Msg("Management context closed")
}
