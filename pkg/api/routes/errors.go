package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
)

// sendError maps missing or broken vehicle data onto a status code
func sendError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, dataconnector.ErrKeyNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ctdf.ErrNotImplementedInAPI):
		status = fiber.StatusNotImplemented
	case errors.Is(err, ctdf.ErrDataInvalid):
		status = fiber.StatusServiceUnavailable
	case dataconnector.IsConnectivityError(err):
		status = fiber.StatusBadGateway
	}

	c.Status(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
