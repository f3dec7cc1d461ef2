package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/models"
)

// ListDestinations runs a discovery and returns the queues and topics of the VPN.
func ListDestinations(c *fiber.Ctx, s *Session) error {
	data, err := s.Manager.Discover(c.UserContext(), s.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(models.DestinationListResponse{
		VPN:    s.VPN,
		Queues: data.Queues,
		Topics: data.Topics,
	})
}
