package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/models"
)

func GetTopic(c *fiber.Ctx, s *Session) error {
	name, err := url.PathUnescape(c.Params("topic"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "topic name is required",
		})
	}
	props, err := s.Manager.GetTopicInfo(c.UserContext(), s.ID, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(models.ResourceInfoResponse{
		Name:       name,
		Kind:       "topic",
		Properties: props,
	})
}
