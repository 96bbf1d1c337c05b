package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/operators"
)

type internetStatusProvider interface {
	InternetStatus() (string, error)
	NextInternetStatus() (string, error)
}

type vehicleStatus struct {
	ID     string `json:"id" groups:"basic"`
	Type   string `json:"type" groups:"basic"`
	Number string `json:"number" groups:"basic"`

	Now time.Time `json:"now" groups:"basic"`

	Connected bool   `json:"connected" groups:"basic"`
	State     string `json:"state" groups:"basic"`

	Position ctdf.Position `json:"position" groups:"basic"`
	// Speed in meters per second
	Speed    float64 `json:"speed" groups:"basic"`
	Distance float64 `json:"distance" groups:"basic"`
	// Delay in seconds
	Delay float64 `json:"delay" groups:"basic"`

	Origin         string `json:"origin" groups:"basic"`
	CurrentStation string `json:"currentStation" groups:"basic"`
	Destination    string `json:"destination" groups:"basic"`

	InternetStatus     string `json:"internetStatus" groups:"detailed"`
	NextInternetStatus string `json:"nextInternetStatus" groups:"detailed"`
}

func VehicleRouter(router fiber.Router, vehicle operators.Vehicle) {
	router.Get("/", getVehicle(vehicle))

	StationsRouter(router.Group("/stations"), vehicle)
	CacheRouter(router.Group("/cache"), vehicle)
}

func getVehicle(vehicle operators.Vehicle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := buildVehicleStatus(vehicle)
		if err != nil {
			return sendError(c, err)
		}

		statusReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, status)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce vehicle",
			})
		}

		return c.JSON(statusReduced)
	}
}

func buildVehicleStatus(vehicle operators.Vehicle) (*vehicleStatus, error) {
	var err error
	status := &vehicleStatus{
		Now:       vehicle.Now(),
		Connected: vehicle.Connected(),
		State:     vehicle.State(),
	}

	if status.ID, err = vehicle.ID(); err != nil {
		return nil, err
	}
	if status.Type, err = vehicle.Type(); err != nil {
		return nil, err
	}
	if status.Number, err = vehicle.Number(); err != nil {
		return nil, err
	}
	if status.Position, err = vehicle.Position(); err != nil {
		return nil, err
	}
	if status.Speed, err = vehicle.Speed(); err != nil {
		return nil, err
	}
	if status.Distance, err = vehicle.Distance(); err != nil {
		return nil, err
	}

	delay, err := vehicle.Delay()
	if err != nil {
		return nil, err
	}
	status.Delay = delay.Seconds()

	origin, err := vehicle.Origin()
	if err != nil {
		return nil, err
	}
	status.Origin = origin.Name

	current, err := vehicle.CurrentStation()
	if err != nil {
		return nil, err
	}
	status.CurrentStation = current.Name

	destination, err := vehicle.Destination()
	if err != nil {
		return nil, err
	}
	status.Destination = destination.Name

	if provider, ok := vehicle.(internetStatusProvider); ok {
		if status.InternetStatus, err = provider.InternetStatus(); err != nil {
			return nil, err
		}
		if status.NextInternetStatus, err = provider.NextInternetStatus(); err != nil {
			return nil, err
		}
	}

	return status, nil
}
