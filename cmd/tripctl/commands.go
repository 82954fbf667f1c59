package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"trip-planner-service/internal/adapters/directions"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/geo"
	"trip-planner-service/internal/services"
)

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "print the daily duty log for a trip duration",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "duration", Usage: "driving duration in hours", Required: true},
			&cli.Float64Flag{Name: "hours-used", Usage: "hours already used in the current cycle"},
			&cli.Float64Flag{Name: "distance", Usage: "trip distance in miles"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			policy, err := config.PolicyFromEnv()
			if err != nil {
				return policyError(err)
			}

			schedule, err := services.PlanSchedule(policy, services.ScheduleInput{
				DistanceMiles: c.Float64("distance"),
				DurationHours: c.Float64("duration"),
				HoursUsed:     c.Float64("hours-used"),
			})
			if err != nil {
				return err
			}

			if c.Bool("json") {
				type logLine struct {
					Day     int     `json:"day"`
					Driving float64 `json:"driving"`
					Rest    float64 `json:"rest"`
					Fuel    string  `json:"fuel"`
				}
				lines := make([]logLine, 0, len(schedule.Logs))
				for _, l := range schedule.Logs {
					lines = append(lines, logLine{Day: l.Day, Driving: l.DrivingHours, Rest: l.RestHours, Fuel: l.FuelPolicy})
				}
				return json.NewEncoder(c.App.Writer).Encode(lines)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tDRIVING\tREST\tFUEL")
			for _, l := range schedule.Logs {
				fmt.Fprintf(w, "%d\t%g\t%g\t%s\n", l.Day, l.DrivingHours, l.RestHours, l.FuelPolicy)
			}
			fmt.Fprintf(w, "total\t%g\t\t\n", schedule.TotalDrivingHours())
			return w.Flush()
		},
	}
}

func stopsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stops",
		Usage: "print fueling stops along a GeoJSON route",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "geojson", Usage: "LineString, Feature or ORS FeatureCollection file", Required: true},
			&cli.Float64Flag{Name: "interval-miles", Usage: "distance between stops (defaults to FUEL_INTERVAL_MILES)"},
			&cli.StringFlag{Name: "interpolation", Value: config.Get("INTERPOLATION", "linear"), Usage: "linear or great_circle"},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("geojson"))
			if err != nil {
				return fmt.Errorf("read route: %w", err)
			}

			result, err := directions.DecodeGeoJSON(data)
			if err != nil {
				return err
			}

			strategy, err := geo.ParseInterpolation(c.String("interpolation"))
			if err != nil {
				return err
			}

			policy, err := config.PolicyFromEnv()
			if err != nil {
				return policyError(err)
			}
			if c.IsSet("interval-miles") {
				policy.FuelIntervalMiles = c.Float64("interval-miles")
			}

			stops, err := services.FuelStops(result.Route, policy.FuelIntervalMeters(), strategy)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "route\t%.1f miles\t%d points\n", geo.PathLength(result.Route)/domain.MetersPerMile, len(result.Route))
			fmt.Fprintln(w, "#\tLAT\tLNG\tTYPE")
			for i, s := range stops {
				fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\n", i+1, s.Position.Lat, s.Position.Lon, s.Kind)
			}
			return w.Flush()
		},
	}
}
