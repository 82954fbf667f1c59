package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_FORMAT", ""), config.Get("LOG_LEVEL", ""))

	app := &cli.App{
		Name:  "dbtool",
		Usage: "manage the trip planner database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Value:   config.Get("DB_DRIVER", db.DriverSQLite),
				Usage:   "database driver (sqlite or pgx)",
				EnvVars: []string{"DB_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Value:   config.Get("DATABASE_URL", "data/trips.db"),
				Usage:   "database DSN or SQLite file path",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the trips and directions cache tables",
				Action: func(c *cli.Context) error {
					conn, err := db.Open(c.Context, c.String("driver"), c.String("database-url"))
					if err != nil {
						return err
					}
					defer conn.Close()

					log.Info().Msg("Initializing database schema...")
					if err := repositories.InitSchema(c.Context, conn); err != nil {
						return fmt.Errorf("schema initialization failed: %w", err)
					}
					log.Info().Msg("Schema ready.")
					return nil
				},
			},
			{
				Name:  "trips",
				Usage: "list recently planned trips",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of trips to show"},
				},
				Action: func(c *cli.Context) error {
					conn, err := db.Open(c.Context, c.String("driver"), c.String("database-url"))
					if err != nil {
						return err
					}
					defer conn.Close()

					return listTrips(c.Context, repositories.NewSQLTripRepository(conn, c.String("driver")), c.Int("limit"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func listTrips(ctx context.Context, repo *repositories.SQLTripRepository, limit int) error {
	trips, err := repo.ListTrips(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMILES\tHOURS\tDAYS\tFUEL STOPS")
	for _, t := range trips {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.2f\t%d\t%d\n",
			t.ID,
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Summary.DistanceMiles,
			t.Summary.DurationHours,
			len(t.Schedule.Days),
			len(t.FuelStops),
		)
	}
	return w.Flush()
}
