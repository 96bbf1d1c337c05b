package ctdf

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/travigo/onboard/pkg/lazycache"
)

// Station is a stop on the vehicles trip
type Station struct {
	ID   string `json:"id" groups:"basic"`
	Name string `json:"name" groups:"basic"`

	Platform  *ScheduledEvent[string]    `json:"platform" groups:"basic"`
	Arrival   *ScheduledEvent[time.Time] `json:"arrival" groups:"basic"`
	Departure *ScheduledEvent[time.Time] `json:"departure" groups:"basic"`

	Position *Position `json:"position" groups:"basic"`
	// Distance from the start of the trip in meters
	Distance *float64 `json:"distance" groups:"basic"`

	connections *lazycache.Attribute[[]*ConnectingVehicle]
}

// SetConnections attaches the source of the stations connecting services
func (s *Station) SetConnections(connections *lazycache.Attribute[[]*ConnectingVehicle]) {
	s.connections = connections
}

// Connections returns the connecting services departing from this station
func (s *Station) Connections(ctx context.Context) ([]*ConnectingVehicle, error) {
	if s.connections == nil {
		return nil, nil
	}

	return s.connections.Get(ctx)
}

func (s *Station) String() string {
	return s.Name
}

// DistanceToStation calculates the distance in meters to another station.
// The distances from the start are preferred, the positions are used otherwise.
func (s *Station) DistanceToStation(other *Station) (float64, bool) {
	if other == nil {
		return 0, false
	}

	if s.Distance != nil && other.Distance != nil {
		return math.Abs(*s.Distance - *other.Distance), true
	}

	if s.Position != nil && other.Position != nil {
		return s.Position.DistanceTo(*other.Position), true
	}

	return 0, false
}

func (s *Station) DistanceToPosition(position Position) (float64, bool) {
	if s.Position == nil {
		return 0, false
	}

	return s.Position.DistanceTo(position), true
}

// DistanceFromStart calculates the distance in meters to a point distanceFromStart meters along the trip
func (s *Station) DistanceFromStart(distanceFromStart float64) (float64, bool) {
	if s.Distance == nil {
		return 0, false
	}

	return math.Abs(*s.Distance - distanceFromStart), true
}

// ConnectingVehicle is a vehicle that is not part of the main trip but of a connecting service.
// It may only have limited information available.
type ConnectingVehicle struct {
	VehicleType string `json:"vehicleType" groups:"basic"`
	LineNumber  string `json:"lineNumber" groups:"basic"`
	Destination string `json:"destination" groups:"basic"`

	Platform  *ScheduledEvent[string]    `json:"platform" groups:"basic"`
	Departure *ScheduledEvent[time.Time] `json:"departure" groups:"basic"`
}

func (c *ConnectingVehicle) String() string {
	str := fmt.Sprintf("%s%s to %s", c.VehicleType, c.LineNumber, c.Destination)

	if c.Departure != nil {
		str = fmt.Sprintf("%s at %s", str, c.Departure.Actual.Format("15:04"))
	}
	if c.Platform != nil && c.Platform.Actual != "" {
		str = fmt.Sprintf("%s from platform %s", str, c.Platform.Actual)
	}

	return str
}
