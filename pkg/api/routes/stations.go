package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/operators"
)

type stationResponse struct {
	ID   string `json:"id" groups:"basic"`
	Name string `json:"name" groups:"basic"`

	Platform  *ctdf.ScheduledEvent[string]    `json:"platform" groups:"basic"`
	Arrival   *ctdf.ScheduledEvent[time.Time] `json:"arrival" groups:"basic"`
	Departure *ctdf.ScheduledEvent[time.Time] `json:"departure" groups:"basic"`

	Position *ctdf.Position `json:"position" groups:"basic"`
	Distance *float64       `json:"distance" groups:"basic"`

	Current bool `json:"current" groups:"basic"`

	Connections []*ctdf.ConnectingVehicle `json:"connections" groups:"detailed"`
}

func StationsRouter(router fiber.Router, vehicle operators.Vehicle) {
	router.Get("/", listStations(vehicle))
	router.Get("/:identifier", getStation(vehicle))
}

func listStations(vehicle operators.Vehicle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stations, err := vehicle.Stations()
		if err != nil {
			return sendError(c, err)
		}

		currentID := currentStationID(vehicle)

		responses := []*stationResponse{}
		for _, station := range stations {
			response, err := newStationResponse(station, currentID)
			if err != nil {
				return sendError(c, err)
			}

			responses = append(responses, response)
		}

		stationsReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, responses)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce stations",
			})
		}

		return c.JSON(stationsReduced)
	}
}

func getStation(vehicle operators.Vehicle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		stations, err := vehicle.Stations()
		if err != nil {
			return sendError(c, err)
		}

		var station *ctdf.Station
		for _, s := range stations {
			if s.ID == identifier {
				station = s
				break
			}
		}

		if station == nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find Station matching Station Identifier",
			})
		}

		response, err := newStationResponse(station, currentStationID(vehicle))
		if err != nil {
			return sendError(c, err)
		}

		connections, err := station.Connections(c.Context())
		if err != nil {
			log.Warn().Err(err).Str("station", station.ID).Msg("Failed to get connections")
		}
		response.Connections = connections

		stationReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, response)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce station",
			})
		}

		return c.JSON(stationReduced)
	}
}

func newStationResponse(station *ctdf.Station, currentID string) (*stationResponse, error) {
	response := &stationResponse{}
	if err := copier.CopyWithOption(response, station, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}

	response.Current = station.ID == currentID

	return response, nil
}

func currentStationID(vehicle operators.Vehicle) string {
	current, err := vehicle.CurrentStation()
	if err != nil {
		return ""
	}

	return current.ID
}
