package operators

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/dataconnector"
	"github.com/travigo/onboard/pkg/redis_client"
)

// MirrorPrefix is the prefix the cache of an operators vehicle is mirrored into Redis under
func MirrorPrefix(identifier string) string {
	return fmt.Sprintf("%s%s:", dataconnector.DefaultMirrorPrefix, identifier)
}

// Setup builds the vehicle for the operator identifier and waits until its first data has arrived.
// With mirror set the connector cache is copied into Redis.
func Setup(ctx context.Context, directory string, identifier string, mirror bool) (Vehicle, error) {
	definition, err := Load(directory, identifier)
	if err != nil {
		return nil, err
	}

	var storage dataconnector.Storage
	if mirror {
		if err := redis_client.Connect(); err != nil {
			return nil, err
		}

		storage = dataconnector.NewMirroredStorage(
			dataconnector.NewMemoryStorage(),
			redis_client.NewMirrorCache(redis_client.Client),
			MirrorPrefix(definition.Identifier),
		)
	}

	vehicle, err := NewVehicle(definition, storage)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("operator", definition.Identifier).
		Str("name", definition.Name).
		Bool("mirror", mirror).
		Msg("Connecting to vehicle")

	if err := vehicle.Init(ctx); err != nil {
		return nil, err
	}

	return vehicle, nil
}
