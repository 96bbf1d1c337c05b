package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/operators"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the vehicle web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:     "operator",
						Usage:    "identifier of the operator definition",
						EnvVars:  []string{"ONBOARD_OPERATOR"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "operators-directory",
						Value:   operators.DefaultDefinitionsDirectory,
						EnvVars: []string{"ONBOARD_OPERATORS_DIRECTORY"},
						Usage:   "directory holding the operator definitions",
					},
					&cli.BoolFlag{
						Name:  "mirror",
						Usage: "mirror the connector cache into Redis",
					},
				},
				Action: func(c *cli.Context) error {
					vehicle, err := operators.Setup(c.Context, c.String("operators-directory"), c.String("operator"), c.Bool("mirror"))
					if err != nil {
						return err
					}
					defer func() {
						if err := vehicle.Shutdown(); err != nil {
							log.Error().Err(err).Msg("Vehicle connector failed")
						}
					}()

					return SetupServer(c.String("listen"), vehicle)
				},
			},
		},
	}
}
