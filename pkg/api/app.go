package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/travigo/onboard/pkg/api/routes"
	"github.com/travigo/onboard/pkg/operators"
)

func NewApp(vehicle operators.Vehicle) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)
	webApp.Get("metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.VehicleRouter(webApp.Group("/vehicle"), vehicle)

	return webApp
}
