package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/dataconnector"
	"github.com/travigo/onboard/pkg/operators"
	"github.com/travigo/onboard/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "realtime",
		Usage: "Follow a vehicle in realtime",
		Subcommands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "log the status of the vehicle until interrupted",
				Flags: []cli.Flag{
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
					&cli.StringFlag{
						Name:  "when",
						Usage: "only log when this expression holds, eg. 'SpeedKmh > 200'",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "pretty print the whole status instead of logging it",
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

					watcher, err := NewWatcher(vehicle, vehicle.Period(),
						WithCondition(c.String("when")),
						WithPrettyPrint(c.Bool("pretty")),
					)
					if err != nil {
						_ = vehicle.Shutdown()
						return err
					}

					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()

					done := make(chan error, 1)
					go func() {
						done <- watcher.Run(ctx)
					}()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					cancel()
					<-done

					log.Info().Msg("Shutting down vehicle")

					return vehicle.Shutdown()
				},
			},
			{
				Name:  "cache",
				Usage: "inspect the connector cache mirrored into Redis",
				Subcommands: []*cli.Command{
					{
						Name:      "get",
						Usage:     "print a mirrored value",
						ArgsUsage: "<key>",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "operator",
								Usage:    "identifier of the operator that mirrored the value",
								Required: true,
							},
							&cli.BoolFlag{
								Name:  "pretty",
								Usage: "pretty print the decoded value",
							},
						},
						Action: func(c *cli.Context) error {
							if c.NArg() != 1 {
								return cli.Exit("exactly one key is required", 1)
							}

							if err := redis_client.Connect(); err != nil {
								return err
							}

							value, err := dataconnector.ReadMirrored(
								c.Context,
								redis_client.NewMirrorCache(redis_client.Client),
								operators.MirrorPrefix(c.String("operator")),
								c.Args().First(),
							)
							if err != nil {
								return err
							}

							if !c.Bool("pretty") {
								fmt.Println(string(value))
								return nil
							}

							var decoded any
							if err := json.Unmarshal(value, &decoded); err != nil {
								return err
							}
							pretty.Println(decoded)

							return nil
						},
					},
				},
			},
		},
	}
}
