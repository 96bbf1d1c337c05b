package ctdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/onboard/pkg/lazycache"
)

func float(value float64) *float64 {
	return &value
}

func TestStationDistanceToStation(t *testing.T) {
	berlin := NewPosition(52.52, 13.405)
	munich := NewPosition(48.1351, 11.582)

	a := &Station{ID: "a", Distance: float(1000), Position: &berlin}
	b := &Station{ID: "b", Distance: float(250), Position: &munich}

	distance, ok := a.DistanceToStation(b)
	assert.True(t, ok)
	assert.Equal(t, 750.0, distance)

	a.Distance = nil
	distance, ok = a.DistanceToStation(b)
	assert.True(t, ok)
	assert.InDelta(t, 504689.41, distance, 0.5)

	_, ok = (&Station{}).DistanceToStation(b)
	assert.False(t, ok)

	_, ok = a.DistanceToStation(nil)
	assert.False(t, ok)
}

func TestStationDistanceFromStart(t *testing.T) {
	station := &Station{Distance: float(5000)}

	distance, ok := station.DistanceFromStart(7500)
	assert.True(t, ok)
	assert.Equal(t, 2500.0, distance)

	_, ok = (&Station{}).DistanceFromStart(7500)
	assert.False(t, ok)
}

func TestStationConnections(t *testing.T) {
	station := &Station{ID: "8000105", Name: "Frankfurt(Main)Hbf"}

	connections, err := station.Connections(context.Background())
	require.NoError(t, err)
	assert.Nil(t, connections)

	calls := 0
	station.SetConnections(lazycache.New("8000105", func(ctx context.Context, id string) ([]*ConnectingVehicle, bool, error) {
		calls++
		return []*ConnectingVehicle{{VehicleType: "S", LineNumber: "8", Destination: id}}, true, nil
	}))

	connections, err = station.Connections(context.Background())
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, "8000105", connections[0].Destination)

	_, err = station.Connections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	failure := errors.New("no connection")
	station.SetConnections(lazycache.New("8000105", func(ctx context.Context, id string) ([]*ConnectingVehicle, bool, error) {
		return nil, false, failure
	}))
	_, err = station.Connections(context.Background())
	assert.ErrorIs(t, err, failure)
}

func TestConnectingVehicleString(t *testing.T) {
	departure := NewScheduledEvent(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC))
	platform := NewScheduledEvent("3", "4")

	vehicle := &ConnectingVehicle{
		VehicleType: "ICE",
		LineNumber:  "597",
		Destination: "München Hbf",
		Departure:   &departure,
		Platform:    &platform,
	}

	assert.Equal(t, "ICE597 to München Hbf at 10:05 from platform 4", vehicle.String())
	assert.Equal(t, "RE1 to Cottbus", (&ConnectingVehicle{VehicleType: "RE", LineNumber: "1", Destination: "Cottbus"}).String())
}

func TestDelayAt(t *testing.T) {
	scheduled := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	arrival := NewScheduledEvent(scheduled, scheduled.Add(3*time.Minute))
	departure := NewScheduledEvent(scheduled, scheduled.Add(5*time.Minute))

	assert.Equal(t, 3*time.Minute, DelayAt(&Station{Arrival: &arrival, Departure: &departure}))
	assert.Equal(t, 5*time.Minute, DelayAt(&Station{Departure: &departure}))
	assert.Equal(t, time.Duration(0), DelayAt(&Station{}))
	assert.Equal(t, time.Duration(0), DelayAt(nil))
}

func TestOriginAndDestinationOf(t *testing.T) {
	stations := []*Station{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	origin, err := OriginOf(stations)
	require.NoError(t, err)
	assert.Equal(t, "a", origin.ID)

	destination, err := DestinationOf(stations)
	require.NoError(t, err)
	assert.Equal(t, "c", destination.ID)

	_, err = OriginOf(nil)
	assert.ErrorIs(t, err, ErrDataInvalid)
	_, err = DestinationOf(nil)
	assert.ErrorIs(t, err, ErrDataInvalid)
}

func TestTransportTypeValid(t *testing.T) {
	assert.True(t, TransportTypeTrain.Valid())
	assert.False(t, TransportTypeUnknown.Valid())
	assert.False(t, TransportType("Zeppelin").Valid())
}
