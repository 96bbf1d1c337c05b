package operators

import (
	"fmt"
	"time"

	"github.com/travigo/onboard/pkg/ctdf"
	"github.com/travigo/onboard/pkg/dataconnector"
	"github.com/travigo/onboard/pkg/operators/iceportal"
)

// Vehicle is a train together with the cache of the connector feeding it
type Vehicle interface {
	ctdf.Train

	Connected() bool
	State() string
	Period() time.Duration
	Cache() *dataconnector.DataConnector
}

// NewVehicle builds the vehicle for a definition, storage replaces the connectors in-memory cache when set
func NewVehicle(definition Definition, storage dataconnector.Storage) (Vehicle, error) {
	refreshPeriod, err := definition.GetRefreshPeriod()
	if err != nil {
		return nil, err
	}

	connectionsTTL, err := definition.GetConnectionsTTL()
	if err != nil {
		return nil, err
	}

	switch definition.APIType {
	case APITypeICEPortal:
		var connectorOptions []iceportal.ConnectorOption
		if definition.APIURL != "" {
			connectorOptions = append(connectorOptions, iceportal.WithAPIURL(definition.APIURL))
		}
		if refreshPeriod > 0 {
			connectorOptions = append(connectorOptions, iceportal.WithRefreshPeriod(refreshPeriod))
		}
		if storage != nil {
			connectorOptions = append(connectorOptions, iceportal.WithStorage(storage))
		}

		var trainOptions []iceportal.TrainOption
		if connectionsTTL > 0 {
			trainOptions = append(trainOptions, iceportal.WithConnectionsTTL(connectionsTTL))
		}

		return iceportal.NewTrain(iceportal.NewConnector(connectorOptions...), trainOptions...), nil
	default:
		return nil, fmt.Errorf("%w: api type %s", ErrUnknownOperator, definition.APIType)
	}
}
