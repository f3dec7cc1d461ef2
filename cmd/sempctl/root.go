package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ottermq/sempctl/config"
	"github.com/ottermq/sempctl/internal/core/management"
	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/core/semp"
	"github.com/ottermq/sempctl/pkg/logger"
	"github.com/ottermq/sempctl/pkg/metrics"
	"github.com/ottermq/sempctl/pkg/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds what every command shares: one management connection opened
// from config and flags.
type app struct {
	out    io.Writer
	errOut io.Writer
	// transport overrides the HTTP transport; tests plug a fake broker in here.
	transport semp.Transport

	cfg       *config.Config
	collector *metrics.Collector
	svc       *management.Service
	id        registry.ConnectionID

	shutdownTracing func(context.Context) error
}

type rootFlags struct {
	vpn          string
	url          string
	username     string
	password     string
	topicAliases bool
	logLevel     string
	metrics      bool
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "sempctl",
		Short: "Browse Solace message VPNs through the SEMP v2 management API",
		Long: `sempctl lists the queues and topic endpoints of a message VPN and shows
their configuration, using the broker's SEMP v2 config API.

Connection settings come from SEMPCTL_* environment variables (or a .env file)
and can be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.vpn, "vpn", "", "message VPN (SEMPCTL_VPN)")
	pf.StringVar(&flags.url, "url", "", "management URL, e.g. http://broker:8080 (SEMPCTL_MGMT_URL)")
	pf.StringVarP(&flags.username, "username", "u", "", "management username (SEMPCTL_MGMT_USERNAME)")
	pf.StringVarP(&flags.password, "password", "p", "", "management password (SEMPCTL_MGMT_PASSWORD)")
	pf.BoolVar(&flags.topicAliases, "topic-aliases", false, "list topics by their JNDI names (SEMPCTL_TOPIC_ALIASES)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (LOG_LEVEL)")
	pf.BoolVar(&flags.metrics, "metrics", false, "collect request metrics (SEMPCTL_ENABLE_METRICS)")

	rootCmd.AddCommand(
		newDiscoverCmd(a),
		newQueueInfoCmd(a),
		newTopicInfoCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	cfg := config.LoadConfig(VERSION)
	applyFlags(cmd, cfg, flags)
	a.cfg = cfg

	logger.InitWithWriter(cfg.LogLevel, a.errOut)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.EnableTracing {
		shutdown, err := tracing.Init(ctx, tracing.Config{Endpoint: cfg.TracingEndpoint, Version: cfg.Version})
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		a.shutdownTracing = shutdown
	}

	transport := a.transport
	if transport == nil {
		transport = semp.NewHTTPTransport(semp.WithTracing(cfg.EnableTracing))
	}

	var opts []management.Option
	if cfg.EnableMetrics {
		a.collector = metrics.NewCollector(nil)
		opts = append(opts, management.WithMetrics(a.collector))
	}
	a.svc = management.NewService(transport, opts...)

	a.id = registry.NewConnectionID()
	props, err := cfg.ConnectionProperties()
	if err != nil {
		return err
	}
	if err := a.svc.Open(ctx, props, a.id); err != nil {
		return err
	}
	log.Debug().Str("connection", a.id.String()).Msg("Connection opened")
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.svc != nil {
		a.svc.Close(a.id)
	}
	if a.collector != nil {
		if err := a.collector.WriteText(a.errOut); err != nil {
			log.Warn().Err(err).Msg("Failed to write metrics")
		}
	}
	if a.shutdownTracing != nil {
		if ctx == nil {
			ctx = context.Background()
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.shutdownTracing(shutdownCtx); err != nil {
			return fmt.Errorf("failed to flush traces: %w", err)
		}
	}
	return nil
}

// applyFlags lets explicitly set flags win over config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags rootFlags) {
	fs := cmd.Flags()
	if fs.Changed("vpn") {
		cfg.VPN = flags.vpn
	}
	if fs.Changed("url") {
		cfg.MgmtURL = flags.url
	}
	if fs.Changed("username") {
		cfg.MgmtUsername = flags.username
	}
	if fs.Changed("password") {
		cfg.MgmtPassword = flags.password
	}
	if fs.Changed("topic-aliases") {
		cfg.TopicAliases = flags.topicAliases
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("metrics") {
		cfg.EnableMetrics = flags.metrics
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
