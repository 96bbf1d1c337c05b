package iceportal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
	"github.com/travigo/onboard/pkg/lazycache"
)

const (
	InternetStatusUnknown = "NO_INFO"
	WagonClassFirst       = "FIRST"
)

var _ ctdf.Train = (*Train)(nil)

// Train is an ICE train as described by its ICE Portal
type Train struct {
	connector      *Connector
	connectionsTTL time.Duration

	mutex       sync.Mutex
	connections map[string]*lazycache.Attribute[[]*ctdf.ConnectingVehicle]
}

type TrainOption func(*Train)

// WithConnectionsTTL sets how long connecting services of a station are cached
func WithConnectionsTTL(ttl time.Duration) TrainOption {
	return func(t *Train) {
		t.connectionsTTL = ttl
	}
}

func NewTrain(connector *Connector, opts ...TrainOption) *Train {
	t := &Train{
		connector:      connector,
		connectionsTTL: lazycache.DefaultTTL,
		connections:    map[string]*lazycache.Attribute[[]*ctdf.ConnectingVehicle]{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Train) Connector() *Connector {
	return t.connector
}

func (t *Train) Init(ctx context.Context) error {
	t.connector.Start()

	if err := t.connector.WaitConnected(ctx); err != nil {
		if stopErr := t.connector.Stop(); stopErr != nil && !errors.Is(err, stopErr) {
			log.Debug().Err(stopErr).Str("connector", t.connector.APIURL).Msg("Failed to stop connector after failed init")
		}
		return err
	}

	return nil
}

func (t *Train) Shutdown() error {
	return t.connector.Stop()
}

func (t *Train) ID() (string, error) {
	status, err := t.connector.Status()
	if err != nil {
		return "", err
	}

	return status.Tzn, nil
}

// Now is the server time of the portal, the local clock is used until it is known
func (t *Train) Now() time.Time {
	status, err := t.connector.Status()
	if err != nil || status.ServerTime == 0 {
		return time.Now()
	}

	return time.UnixMilli(status.ServerTime)
}

func (t *Train) Type() (string, error) {
	trip, err := t.trip()
	if err != nil {
		return "", err
	}

	return trip.TrainType, nil
}

func (t *Train) Number() (string, error) {
	trip, err := t.trip()
	if err != nil {
		return "", err
	}

	return trip.Vzn, nil
}

func (t *Train) Stations() ([]*ctdf.Station, error) {
	trip, err := t.trip()
	if err != nil {
		return nil, err
	}

	if trip.Stops == nil {
		return nil, fmt.Errorf("%w: trip has no stops", ctdf.ErrDataInvalid)
	}

	stations := make([]*ctdf.Station, 0, len(trip.Stops))
	for _, stop := range trip.Stops {
		stations = append(stations, t.station(stop))
	}

	return stations, nil
}

func (t *Train) StationByID(id string) (*ctdf.Station, error) {
	stations, err := t.Stations()
	if err != nil {
		return nil, err
	}

	for _, station := range stations {
		if station.ID == id {
			return station, nil
		}
	}

	return nil, fmt.Errorf("%w: no station with id %s", ctdf.ErrDataInvalid, id)
}

func (t *Train) Origin() (*ctdf.Station, error) {
	stations, err := t.Stations()
	if err != nil {
		return nil, err
	}

	return ctdf.OriginOf(stations)
}

// CurrentStation is the next station the train arrives at or the station it is currently standing in
func (t *Train) CurrentStation() (*ctdf.Station, error) {
	trip, err := t.trip()
	if err != nil {
		return nil, err
	}

	station, err := t.StationByID(trip.StopInfo.ActualNext)
	if err != nil {
		return nil, fmt.Errorf("%w: no current station found", ctdf.ErrDataInvalid)
	}

	return station, nil
}

func (t *Train) Destination() (*ctdf.Station, error) {
	stations, err := t.Stations()
	if err != nil {
		return nil, err
	}

	return ctdf.DestinationOf(stations)
}

func (t *Train) Speed() (float64, error) {
	status, err := t.connector.Status()
	if err != nil {
		return 0, err
	}

	return ctdf.KmhToMs(status.Speed), nil
}

func (t *Train) Distance() (float64, error) {
	trip, err := t.trip()
	if err != nil {
		return 0, err
	}

	return trip.ActualPosition + trip.DistanceFromLastStop, nil
}

func (t *Train) Position() (ctdf.Position, error) {
	status, err := t.connector.Status()
	if err != nil {
		return ctdf.Position{}, err
	}

	return ctdf.NewPosition(status.Latitude, status.Longitude), nil
}

func (t *Train) Delay() (time.Duration, error) {
	station, err := t.CurrentStation()
	if err != nil {
		return 0, err
	}

	return ctdf.DelayAt(station), nil
}

// DelayReasons lists the reasons given for delays by station id
func (t *Train) DelayReasons() (map[string][]string, error) {
	trip, err := t.trip()
	if err != nil {
		return nil, err
	}

	reasons := map[string][]string{}
	for _, stop := range trip.Stops {
		for _, reason := range stop.DelayReasons {
			reasons[stop.Station.EvaNr] = append(reasons[stop.Station.EvaNr], reason.Text)
		}
	}

	return reasons, nil
}

// CurrentDelayReasons are the delay reasons given for the current station
func (t *Train) CurrentDelayReasons() ([]string, error) {
	trip, err := t.trip()
	if err != nil {
		return nil, err
	}

	reasons, err := t.DelayReasons()
	if err != nil {
		return nil, err
	}

	return reasons[trip.StopInfo.ActualNext], nil
}

func (t *Train) WagonClass() (string, error) {
	status, err := t.connector.Status()
	if err != nil {
		return "", err
	}

	return status.WagonClass, nil
}

// HasBAP reports whether the at-seat service is available, it is only offered in first class
func (t *Train) HasBAP() (bool, error) {
	status, err := t.connector.Status()
	if err != nil {
		return false, err
	}

	if status.WagonClass != WagonClassFirst || !status.BapInstalled {
		return false, nil
	}

	// Not fetched yet
	bap, err := t.connector.BAPServiceStatus()
	if errors.Is(err, dataconnector.ErrKeyNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return bap.Status, nil
}

func (t *Train) InternetStatus() (string, error) {
	connectivity, err := t.connectivity()
	if err != nil {
		return "", err
	}

	if connectivity == nil || connectivity.CurrentState == "" {
		return InternetStatusUnknown, nil
	}

	return connectivity.CurrentState, nil
}

func (t *Train) NextInternetStatus() (string, error) {
	connectivity, err := t.connectivity()
	if err != nil {
		return "", err
	}

	if connectivity == nil || connectivity.NextState == "" {
		return InternetStatusUnknown, nil
	}

	return connectivity.NextState, nil
}

// InternetStatusChange is the time until the internet status changes, nil if that is not known
func (t *Train) InternetStatusChange() (*time.Duration, error) {
	connectivity, err := t.connectivity()
	if err != nil {
		return nil, err
	}

	if connectivity == nil || connectivity.RemainingTimeSeconds == nil {
		return nil, nil
	}

	remaining := time.Duration(*connectivity.RemainingTimeSeconds) * time.Second
	return &remaining, nil
}

func (t *Train) connectivity() (*StatusConnectivity, error) {
	status, err := t.connector.Status()
	if err != nil {
		return nil, err
	}

	return status.Connectivity, nil
}

func (t *Train) trip() (*Trip, error) {
	tripInfo, err := t.connector.TripInfo()
	if err != nil {
		return nil, err
	}

	return &tripInfo.Trip, nil
}

func (t *Train) station(stop Stop) *ctdf.Station {
	station := &ctdf.Station{
		ID:        stop.Station.EvaNr,
		Name:      stop.Station.Name,
		Platform:  platformEvent(stop.Track),
		Arrival:   timeEvent(stop.Timetable.ScheduledArrivalTime, stop.Timetable.ActualArrivalTime),
		Departure: timeEvent(stop.Timetable.ScheduledDepartureTime, stop.Timetable.ActualDepartureTime),
	}

	if stop.Station.Geocoordinates != nil {
		position := ctdf.NewPosition(stop.Station.Geocoordinates.Latitude, stop.Station.Geocoordinates.Longitude)
		station.Position = &position
	}

	distance := stop.Info.DistanceFromStart
	station.Distance = &distance

	station.SetConnections(t.connectionsFor(stop.Station.EvaNr))

	return station
}

// connectionsFor keeps one cache per station so the TTL survives rebuilding the station list
func (t *Train) connectionsFor(stationID string) *lazycache.Attribute[[]*ctdf.ConnectingVehicle] {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if attribute, ok := t.connections[stationID]; ok {
		return attribute
	}

	attribute := lazycache.New[[]*ctdf.ConnectingVehicle](stationID, t.connector.Connections, lazycache.WithTTL[[]*ctdf.ConnectingVehicle](t.connectionsTTL))
	t.connections[stationID] = attribute

	return attribute
}

// Cache is the data connector holding the raw portal responses
func (t *Train) Cache() *dataconnector.DataConnector {
	return t.connector.DataConnector
}

func (t *Train) Connected() bool {
	return t.connector.Connected()
}

// State is the lifecycle state of the connector polling the portal
func (t *Train) State() string {
	return t.connector.State()
}

// Period is how often the portal is polled
func (t *Train) Period() time.Duration {
	return t.connector.Period()
}
