package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/operators"
)

func SetupServer(listen string, vehicle operators.Vehicle) error {
	webApp := NewApp(vehicle)

	log.Info().Str("listen", listen).Msg("Starting web API")

	return webApp.Listen(listen)
}
