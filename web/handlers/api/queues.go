package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/models"
)

func GetQueue(c *fiber.Ctx, s *Session) error {
	name, err := url.PathUnescape(c.Params("queue"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "queue name is required",
		})
	}
	props, err := s.Manager.GetQueueInfo(c.UserContext(), s.ID, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(models.ResourceInfoResponse{
		Name:       name,
		Kind:       "queue",
		Properties: props,
	})
}
