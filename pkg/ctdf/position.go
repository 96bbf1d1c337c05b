package ctdf

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulcager/osgridref"
	"github.com/tidwall/geodesic"
)

// Position is a point on the earth with an optional altitude (meters) and compass heading (degrees)
type Position struct {
	Latitude  float64  `json:"latitude" groups:"basic"`
	Longitude float64  `json:"longitude" groups:"basic"`
	Altitude  *float64 `json:"altitude,omitempty" groups:"basic"`
	Heading   *float64 `json:"heading,omitempty" groups:"basic"`
}

func NewPosition(latitude float64, longitude float64) Position {
	return Position{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// PositionFromOSGridRef converts an Ordnance Survey easting/northing pair into a Position
func PositionFromOSGridRef(easting string, northing string) (Position, error) {
	gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", easting, northing))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %s", ErrDataInvalid, err)
	}

	lat, lon := gridRef.ToLatLon()

	return NewPosition(lat, lon), nil
}

func (p Position) WithAltitude(altitude float64) Position {
	p.Altitude = &altitude
	return p
}

func (p Position) WithHeading(heading float64) Position {
	p.Heading = &heading
	return p
}

// DistanceTo returns the geodesic distance in meters between the two positions on the WGS-84 ellipsoid.
// Altitude is ignored.
func (p Position) DistanceTo(other Position) float64 {
	var distance float64
	geodesic.WGS84.Inverse(p.Latitude, p.Longitude, other.Latitude, other.Longitude, &distance, nil, nil)

	return distance
}

func (p Position) String() string {
	var sb strings.Builder

	sb.WriteString(formatDMS(p.Latitude, "N", "S"))
	sb.WriteString(" ")
	sb.WriteString(formatDMS(p.Longitude, "E", "W"))

	if p.Altitude != nil {
		fmt.Fprintf(&sb, " %.2fm", *p.Altitude)
	}
	if p.Heading != nil {
		fmt.Fprintf(&sb, " %.2f°", *p.Heading)
	}

	return sb.String()
}

func formatDMS(value float64, positive string, negative string) string {
	hemisphere := positive
	if value < 0 {
		hemisphere = negative
	}

	value = math.Abs(value)
	degrees := math.Floor(value)
	minutes := math.Floor((value - degrees) * 60)
	seconds := ((value-degrees)*60 - minutes) * 60

	return fmt.Sprintf("%d°%d'%.3f\"%s", int(degrees), int(minutes), seconds, hemisphere)
}

// KmhToMs converts a speed in kilometers per hour to meters per second
func KmhToMs(kmh float64) float64 {
	return kmh / 3.6
}
