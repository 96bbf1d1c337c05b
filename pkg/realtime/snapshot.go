package realtime

import (
	"github.com/travigo/onboard/pkg/ctdf"
)

// Snapshot is the state of a vehicle at one point in time, it is the environment watch conditions run against
type Snapshot struct {
	ID     string
	Type   string
	Number string

	// Speed in meters per second
	Speed    float64
	SpeedKmh float64

	Latitude  float64
	Longitude float64
	Position  string

	// Distance from the start of the trip in meters
	Distance float64
	// Delay in seconds
	Delay float64

	NextStation string
	Destination string

	Connected bool
}

type connectedVehicle interface {
	Connected() bool
}

// TakeSnapshot reads the current state of a train, failing if the connector has no data for it yet
func TakeSnapshot(train ctdf.Train) (Snapshot, error) {
	var err error
	snapshot := Snapshot{}

	if snapshot.ID, err = train.ID(); err != nil {
		return snapshot, err
	}
	if snapshot.Type, err = train.Type(); err != nil {
		return snapshot, err
	}
	if snapshot.Number, err = train.Number(); err != nil {
		return snapshot, err
	}

	if snapshot.Speed, err = train.Speed(); err != nil {
		return snapshot, err
	}
	snapshot.SpeedKmh = snapshot.Speed * 3.6

	position, err := train.Position()
	if err != nil {
		return snapshot, err
	}
	snapshot.Latitude = position.Latitude
	snapshot.Longitude = position.Longitude
	snapshot.Position = position.String()

	if snapshot.Distance, err = train.Distance(); err != nil {
		return snapshot, err
	}

	delay, err := train.Delay()
	if err != nil {
		return snapshot, err
	}
	snapshot.Delay = delay.Seconds()

	next, err := train.CurrentStation()
	if err != nil {
		return snapshot, err
	}
	snapshot.NextStation = next.Name

	destination, err := train.Destination()
	if err != nil {
		return snapshot, err
	}
	snapshot.Destination = destination.Name

	if connected, ok := train.(connectedVehicle); ok {
		snapshot.Connected = connected.Connected()
	}

	return snapshot, nil
}
