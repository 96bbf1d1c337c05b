package ctdf

import (
	"context"
	"fmt"
	"time"
)

type Vehicle interface {
	// ID is the unique identifier of this specific vehicle
	ID() (string, error)
	// Now is the current time as seen by the vehicle
	Now() time.Time

	// Init connects to the API and returns once the first data has been received
	Init(ctx context.Context) error
	Shutdown() error
}

type PositionProvider interface {
	Position() (Position, error)
}

type SpeedProvider interface {
	// Speed in meters per second
	Speed() (float64, error)
}

type StationsProvider interface {
	Stations() ([]*Station, error)
	Origin() (*Station, error)
	CurrentStation() (*Station, error)
	Destination() (*Station, error)

	// Distance from the start of the trip in meters
	Distance() (float64, error)
	Delay() (time.Duration, error)
}

type Train interface {
	Vehicle
	PositionProvider
	SpeedProvider
	StationsProvider

	// Type is the abbreviated train type, eg. ICE
	Type() (string, error)
	// Number is the line number of the train
	Number() (string, error)
}

func OriginOf(stations []*Station) (*Station, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("%w: no origin station found", ErrDataInvalid)
	}

	return stations[0], nil
}

func DestinationOf(stations []*Station) (*Station, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("%w: no destination station found", ErrDataInvalid)
	}

	return stations[len(stations)-1], nil
}

// DelayAt is the arrival delay at the station, falling back to the departure delay at the origin
func DelayAt(station *Station) time.Duration {
	if station == nil {
		return 0
	}

	if station.Arrival != nil {
		return Delay(*station.Arrival)
	}
	if station.Departure != nil {
		return Delay(*station.Departure)
	}

	return 0
}
