// Package iceportal reads the passenger information portal of Deutsche Bahn ICE trains.
package iceportal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
	"github.com/travigo/onboard/pkg/transport"
)

const APIURL = "https://iceportal.de"

const (
	KeyStatus = "status"
	KeyTrip   = "trip"
	KeyBAP    = "bap"

	connectionsKeyFormat = "connections_%s"
)

// Connector polls the trip and status endpoints of the ICE Portal
type Connector struct {
	*dataconnector.PollingDataConnector

	client *transport.Client
}

type connectorConfig struct {
	apiURL           string
	period           time.Duration
	storage          dataconnector.Storage
	transportOptions []transport.Option
}

type ConnectorOption func(*connectorConfig)

func WithAPIURL(apiURL string) ConnectorOption {
	return func(c *connectorConfig) {
		c.apiURL = apiURL
	}
}

func WithRefreshPeriod(period time.Duration) ConnectorOption {
	return func(c *connectorConfig) {
		c.period = period
	}
}

func WithStorage(storage dataconnector.Storage) ConnectorOption {
	return func(c *connectorConfig) {
		c.storage = storage
	}
}

func WithTransportOptions(opts ...transport.Option) ConnectorOption {
	return func(c *connectorConfig) {
		c.transportOptions = append(c.transportOptions, opts...)
	}
}

func NewConnector(opts ...ConnectorOption) *Connector {
	config := connectorConfig{
		apiURL:  APIURL,
		period:  dataconnector.DefaultPeriod,
		storage: dataconnector.NewMemoryStorage(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	c := &Connector{
		client: transport.NewClient(config.apiURL, config.transportOptions...),
	}
	c.PollingDataConnector = dataconnector.NewPollingDataConnector(
		dataconnector.NewDataConnector(config.apiURL, dataconnector.WithStorage(config.storage)),
		c,
		dataconnector.WithPeriod(config.period),
	)

	return c
}

func (c *Connector) Refresh(ctx context.Context) error {
	if _, err := c.FetchStatus(ctx); err != nil {
		return err
	}

	if _, err := c.FetchTrip(ctx); err != nil {
		return err
	}

	// The BAP status never changes during a trip, it only has to be fetched once
	if _, ok := c.Storage().Load(KeyBAP); !ok {
		if _, err := c.FetchBAPServiceStatus(ctx); err != nil {
			if !dataconnector.IsConnectivityError(err) {
				return err
			}
			log.Debug().Err(err).Msg("BAP service status not available")
		}
	}

	return nil
}

func (c *Connector) FetchStatus(ctx context.Context) (*Status, error) {
	return dataconnector.StoreResult(c, KeyStatus, func() (*Status, error) {
		var status *Status
		err := c.client.GetJSON(ctx, "api1/rs/status", nil, &status)
		return status, err
	})
}

func (c *Connector) FetchTrip(ctx context.Context) (*TripInfo, error) {
	return dataconnector.StoreResult(c, KeyTrip, func() (*TripInfo, error) {
		var tripInfo *TripInfo
		err := c.client.GetJSON(ctx, "api1/rs/tripInfo/trip", nil, &tripInfo)
		return tripInfo, err
	})
}

func (c *Connector) FetchBAPServiceStatus(ctx context.Context) (*BAPServiceStatus, error) {
	return dataconnector.StoreResult(c, KeyBAP, func() (*BAPServiceStatus, error) {
		var bap *BAPServiceStatus
		err := c.client.GetJSON(ctx, "bap/api/bap-service-status", nil, &bap)
		return bap, err
	})
}

func (c *Connector) Status() (*Status, error) {
	return cached[Status](c, KeyStatus)
}

func (c *Connector) TripInfo() (*TripInfo, error) {
	return cached[TripInfo](c, KeyTrip)
}

func (c *Connector) BAPServiceStatus() (*BAPServiceStatus, error) {
	return cached[BAPServiceStatus](c, KeyBAP)
}

// cached returns the response stored under key, a stored null counts as invalid data
func cached[T any](c *Connector, key string) (*T, error) {
	value, err := dataconnector.GetAs[*T](c.DataConnector, key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, fmt.Errorf("%w: %s is empty", ctdf.ErrDataInvalid, key)
	}

	return value, nil
}

// Connections fetches the connecting services for a station.
// The portal only knows them shortly before arrival, so an empty answer falls back to the last one seen.
func (c *Connector) Connections(ctx context.Context, stationID string) ([]*ctdf.ConnectingVehicle, bool, error) {
	var response ConnectionsResponse
	endpoint := fmt.Sprintf("api1/rs/tripInfo/connection/%s", url.PathEscape(stationID))

	if err := c.client.GetJSONWithRetry(ctx, endpoint, nil, &response); err != nil {
		return nil, false, err
	}

	cacheKey := fmt.Sprintf(connectionsKeyFormat, stationID)

	if len(response.Connections) == 0 {
		cached := dataconnector.LoadAs[[]*ctdf.ConnectingVehicle](c.DataConnector, cacheKey, nil)
		return cached, len(cached) > 0, nil
	}

	var connections []*ctdf.ConnectingVehicle
	for _, connection := range response.Connections {
		connections = append(connections, &ctdf.ConnectingVehicle{
			VehicleType: connection.TrainType,
			LineNumber:  connection.Vzn,
			Destination: connection.Station.Name,
			Platform:    platformEvent(connection.Track),
			Departure:   timeEvent(connection.Timetable.ScheduledDepartureTime, connection.Timetable.ActualDepartureTime),
		})
	}

	c.Store(cacheKey, connections)

	return connections, true, nil
}

func timeEvent(scheduled *int64, actual *int64) *ctdf.ScheduledEvent[time.Time] {
	if scheduled == nil && actual == nil {
		return nil
	}

	if scheduled == nil {
		event := ctdf.NewScheduledEvent(time.UnixMilli(*actual))
		return &event
	}

	var actualTime time.Time
	if actual != nil {
		actualTime = time.UnixMilli(*actual)
	}

	event := ctdf.NewScheduledEvent(time.UnixMilli(*scheduled), actualTime)
	return &event
}

func platformEvent(track Track) *ctdf.ScheduledEvent[string] {
	if track.Scheduled == "" && track.Actual == "" {
		return nil
	}

	if track.Scheduled == "" {
		event := ctdf.NewScheduledEvent(track.Actual)
		return &event
	}

	event := ctdf.NewScheduledEvent(track.Scheduled, track.Actual)
	return &event
}
