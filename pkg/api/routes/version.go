package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/onboard/pkg/transport"
)

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": transport.Version,
	})
}
