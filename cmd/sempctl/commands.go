package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ottermq/sempctl/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDiscoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List the queues and topics of the message VPN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.svc.Discover(cmd.Context(), a.id)
			if err != nil {
				return err
			}
			return a.printJSON(data)
		},
	}
}

func newQueueInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queue-info NAME",
		Short: "Show the configuration of a queue",
		Long: `Show the configuration of a queue as an ordered JSON object.

An empty object means the broker returned no information for the queue.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := a.svc.GetQueueInfo(cmd.Context(), a.id, args[0])
			if err != nil {
				return err
			}
			return a.printJSON(props)
		},
	}
}

func newTopicInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "topic-info NAME",
		Short: "Show the configuration of a topic endpoint",
		Long: `Show the configuration of a topic endpoint as an ordered JSON object.

With topic aliases enabled NAME is a JNDI topic name; a discovery is run first
so it can be resolved to its topic endpoint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.TopicAliases {
				if _, err := a.svc.Discover(cmd.Context(), a.id); err != nil {
					return err
				}
			}
			props, err := a.svc.GetTopicInfo(cmd.Context(), a.id, args[0])
			if err != nil {
				return err
			}
			return a.printJSON(props)
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only browse API for the message VPN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.WebAddr = addr
			}
			ws := web.NewWebServer(&web.Config{
				Addr:    a.cfg.WebAddr,
				Version: a.cfg.Version,
			}, a.svc, a.id, a.cfg.VPN, a.collector)
			app := ws.SetupApp(a.errOut)

			errCh := make(chan error, 1)
			go func() {
				errCh <- ws.Listen(app)
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down browse API...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info().Msg("Browse API stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (SEMPCTL_WEB_ADDR)")
	return cmd
}
