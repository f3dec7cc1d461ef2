package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/management"
	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/ottermq/sempctl/internal/core/registry"
	"github.com/ottermq/sempctl/internal/core/semp"
)

// Session is the management connection the API browses.
type Session struct {
	Manager management.QueueManager
	ID      registry.ConnectionID
	VPN     string
}

// writeError maps provider errors onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	resp := models.ErrorResponse{Error: err.Error()}

	var (
		df *semp.DiscoveryFailure
		nf *semp.NetworkFailure
	)
	switch {
	case errors.Is(err, semp.ErrAliasNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, registry.ErrContextNotFound):
		status = fiber.StatusServiceUnavailable
	case errors.As(err, &df):
		status = fiber.StatusBadGateway
		resp.Detail = df.Detail
	case errors.As(err, &nf):
		status = fiber.StatusGatewayTimeout
	}
	return c.Status(status).JSON(resp)
}
