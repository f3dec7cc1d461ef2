package web

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/ottermq/sempctl/internal/core/management"
	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/pkg/metrics"
	"github.com/ottermq/sempctl/web/handlers/api"
	"github.com/rs/zerolog/log"
)

// WebServer exposes one management connection as a read-only browse API.
type WebServer struct {
	config  *Config
	manager *management.Service
	session *api.Session
	metrics *metrics.Collector
}

type Config struct {
	Addr      string
	ApiPrefix string
	Version   string
}

func NewWebServer(config *Config, manager *management.Service, id registry.ConnectionID, vpn string, collector *metrics.Collector) *WebServer {
	if config.ApiPrefix == "" {
		config.ApiPrefix = "/api"
	}
	return &WebServer{
		config:  config,
		manager: manager,
		session: &api.Session{Manager: manager, ID: id, VPN: vpn},
		metrics: collector,
	}
}

func (ws *WebServer) SetupApp(logOutput io.Writer) *fiber.App {
	app := ws.configServer(logOutput)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(models.HealthResponse{
			Status:       "ok",
			Version:      ws.config.Version,
			OpenContexts: ws.manager.OpenContexts(),
		})
	})

	if ws.metrics != nil && ws.metrics.IsEnabled() {
		log.Info().Str("path", "/metrics").Msg("Metrics endpoint enabled")
		app.Get("/metrics", adaptor.HTTPHandler(ws.metrics.Handler()))
	}

	ws.AddApi(app)
	return app
}

func (ws *WebServer) AddApi(app *fiber.App) {
	apiGrp := app.Group(ws.config.ApiPrefix)

	apiGrp.Get("/destinations", func(c *fiber.Ctx) error {
		return api.ListDestinations(c, ws.session)
	})
	apiGrp.Get("/queues/:queue", func(c *fiber.Ctx) error {
		return api.GetQueue(c, ws.session)
	})
	apiGrp.Get("/topics/:topic", func(c *fiber.Ctx) error {
		return api.GetTopic(c, ws.session)
	})
}

// Listen blocks serving the browse API on the configured address.
func (ws *WebServer) Listen(app *fiber.App) error {
	log.Info().Str("addr", ws.config.Addr).Msg("Browse API listening")
	return app.Listen(ws.config.Addr)
}

func (ws *WebServer) configServer(logOutput io.Writer) *fiber.App {
	config := fiber.Config{
		Prefork:               false,
		AppName:               "sempctl-browse",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	}
	app := fiber.New(config)

	app.Use(cors.New(cors.Config{
		AllowMethods: fiber.MethodGet,
	}))

	if logOutput != nil {
		app.Use(logger.New(logger.Config{
			Output: logOutput,
		}))
	}
	return app
}
