package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/onboard/pkg/operators"
)

func CacheRouter(router fiber.Router, vehicle operators.Vehicle) {
	router.Get("/", listCacheKeys(vehicle))
	router.Get("/:key", getCacheKey(vehicle))
}

func listCacheKeys(vehicle operators.Vehicle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(vehicle.Cache().Keys())
	}
}

func getCacheKey(vehicle operators.Vehicle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := vehicle.Cache().Get(c.Params("key"))
		if err != nil {
			return sendError(c, err)
		}

		return c.JSON(value)
	}
}
