package ctdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionDistanceTo(t *testing.T) {
	berlin := NewPosition(52.52, 13.405)
	munich := NewPosition(48.1351, 11.582)

	assert.InDelta(t, 504689.41, berlin.DistanceTo(munich), 0.5)
	assert.InDelta(t, berlin.DistanceTo(munich), munich.DistanceTo(berlin), 1e-6)
	assert.Equal(t, 0.0, berlin.DistanceTo(berlin))

	assert.InDelta(t, 111319.49, NewPosition(0, 0).DistanceTo(NewPosition(0, 1)), 0.5)

	// Altitude does not count
	assert.Equal(t, berlin.DistanceTo(munich), berlin.WithAltitude(1000).DistanceTo(munich))
}

func TestPositionDistanceToAntipodal(t *testing.T) {
	// Half the WGS-84 meridian, no geodesic is longer
	const halfMeridian = 20003931.4586

	assert.InDelta(t, halfMeridian, NewPosition(0, 0).DistanceTo(NewPosition(0, 180)), 0.01)

	previous := 0.0
	for _, longitude := range []float64{179.0, 179.5, 179.7, 179.9, 179.99} {
		distance := NewPosition(0, 0).DistanceTo(NewPosition(0, longitude))

		assert.LessOrEqual(t, distance, halfMeridian, "longitude %v", longitude)
		assert.Greater(t, distance, previous, "longitude %v", longitude)
		previous = distance
	}

	distance := NewPosition(0, 0).DistanceTo(NewPosition(0.5, 179.7))
	assert.Greater(t, distance, 19900000.0)
	assert.LessOrEqual(t, distance, halfMeridian)
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, `52°30'0.000"N 13°24'0.000"E`, NewPosition(52.5, 13.4).String())
	assert.Equal(t, `51°30'0.000"S 0°7'39.360"W`, NewPosition(-51.5, -0.1276).String())
	assert.Equal(t, `52°30'0.000"N 13°24'0.000"E 34.00m 90.00°`, NewPosition(52.5, 13.4).WithAltitude(34).WithHeading(90).String())
}

func TestPositionFromOSGridRef(t *testing.T) {
	position, err := PositionFromOSGridRef("530000", "180000")
	require.NoError(t, err)

	assert.InDelta(t, 51.508, position.Latitude, 0.01)
	assert.InDelta(t, -0.126, position.Longitude, 0.01)

	_, err = PositionFromOSGridRef("north", "east")
	assert.ErrorIs(t, err, ErrDataInvalid)
}

func TestKmhToMs(t *testing.T) {
	assert.InDelta(t, 50.0, KmhToMs(180), 1e-9)
	assert.Equal(t, 0.0, KmhToMs(0))
}
