package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
)

type fakeTrain struct {
	speed    float64
	err      error
	stations []*ctdf.Station
}

func newFakeTrain(speed float64) *fakeTrain {
	scheduled := time.Date(2024, 5, 1, 11, 4, 0, 0, time.UTC)
	arrival := ctdf.NewScheduledEvent(scheduled, scheduled.Add(2*time.Minute))

	return &fakeTrain{
		speed: speed,
		stations: []*ctdf.Station{
			{ID: "8000105", Name: "Frankfurt(Main)Hbf"},
			{ID: "8000207", Name: "Köln Hbf", Arrival: &arrival},
			{ID: "8000080", Name: "Dortmund Hbf"},
		},
	}
}

func (f *fakeTrain) ID() (string, error) { return "Tz9027", f.err }
func (f *fakeTrain) Now() time.Time { return time.Now() }
func (f *fakeTrain) Init(ctx context.Context) error { return nil }
func (f *fakeTrain) Shutdown() error { return nil }
func (f *fakeTrain) Position() (ctdf.Position, error) { return ctdf.NewPosition(52.5, 13.4), f.err }
func (f *fakeTrain) Speed() (float64, error) { return f.speed, f.err }
func (f *fakeTrain) Stations() ([]*ctdf.Station, error) { return f.stations, f.err }
func (f *fakeTrain) Origin() (*ctdf.Station, error) { return ctdf.OriginOf(f.stations) }
func (f *fakeTrain) CurrentStation() (*ctdf.Station, error) { return f.stations[1], f.err }
func (f *fakeTrain) Destination() (*ctdf.Station, error) { return ctdf.DestinationOf(f.stations) }
func (f *fakeTrain) Distance() (float64, error) { return 123000, f.err }
func (f *fakeTrain) Delay() (time.Duration, error) { return ctdf.DelayAt(f.stations[1]), f.err }
func (f *fakeTrain) Type() (string, error) { return "ICE", f.err }
func (f *fakeTrain) Number() (string, error) { return "597", f.err }
func (f *fakeTrain) Connected() bool { return true }

func TestTakeSnapshot(t *testing.T) {
	snapshot, err := TakeSnapshot(newFakeTrain(50))
	require.NoError(t, err)

	assert.Equal(t, "Tz9027", snapshot.ID)
	assert.Equal(t, "ICE", snapshot.Type)
	assert.Equal(t, "597", snapshot.Number)
	assert.Equal(t, 50.0, snapshot.Speed)
	assert.InDelta(t, 180.0, snapshot.SpeedKmh, 1e-9)
	assert.Equal(t, 52.5, snapshot.Latitude)
	assert.Equal(t, `52°30'0.000"N 13°24'0.000"E`, snapshot.Position)
	assert.Equal(t, 123000.0, snapshot.Distance)
	assert.Equal(t, 120.0, snapshot.Delay)
	assert.Equal(t, "Köln Hbf", snapshot.NextStation)
	assert.Equal(t, "Dortmund Hbf", snapshot.Destination)
	assert.True(t, snapshot.Connected)
}

func TestTakeSnapshotWithoutData(t *testing.T) {
	train := newFakeTrain(50)
	train.err = dataconnector.ErrKeyNotFound

	_, err := TakeSnapshot(train)
	assert.ErrorIs(t, err, dataconnector.ErrKeyNotFound)
}

func TestWatcherCondition(t *testing.T) {
	tests := []struct {
		condition string
		speed     float64
		expected  bool
	}{
		{"", 0, true},
		{"SpeedKmh > 100", 50, true},
		{"SpeedKmh > 100", 20, false},
		{"Delay >= 120 && NextStation == 'Köln Hbf'", 50, true},
		{"Type + Number == 'ICE597'", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			watcher, err := NewWatcher(newFakeTrain(tt.speed), time.Second, WithCondition(tt.condition))
			require.NoError(t, err)

			snapshot, err := TakeSnapshot(newFakeTrain(tt.speed))
			require.NoError(t, err)

			matches, err := watcher.Matches(snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matches)
		})
	}
}

func TestWatcherInvalidCondition(t *testing.T) {
	_, err := NewWatcher(newFakeTrain(0), time.Second, WithCondition("Altitude > 100"))
	assert.Error(t, err)

	_, err = NewWatcher(newFakeTrain(0), time.Second, WithCondition("SpeedKmh + 1"))
	assert.Error(t, err)
}

func TestWatcherRunStopsWithContext(t *testing.T) {
	train := newFakeTrain(50)
	train.err = errors.New("not yet connected")

	watcher, err := NewWatcher(train, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
