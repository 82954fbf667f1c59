package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/obs"
)

func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_FORMAT", ""), config.Get("LOG_LEVEL", "warn"))

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "tripctl",
		Usage:     "plan duty schedules and fuel stops offline",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			scheduleCommand(),
			stopsCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

func policyError(err error) error {
	return fmt.Errorf("duty policy from environment: %w", err)
}
