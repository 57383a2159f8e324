package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	livetrack "github.com/fleetops/livetrack"
	"github.com/fleetops/livetrack/config"
	"github.com/fleetops/livetrack/maprender"
	"github.com/fleetops/livetrack/trip"
)

func main() {
	app := &cli.App{
		Name:  "livetrack",
		Usage: "live trip tracking and route visualization",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "human-readable log output",
			},
		},
		Before: func(c *cli.Context) error {
			livetrack.InitLogging(c.Bool("pretty"))
			return config.LoadAppConfig()
		},
		Commands: []*cli.Command{
			serveCommand(),
			routeCommand(),
			trackOnceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the tracking HTTP API",
		Action: func(c *cli.Context) error {
			app := livetrack.NewApp(config.Config, maprender.NewLogView(log.Logger))
			server := livetrack.NewServer(app, config.Config.Server.Port)
			server.Start()
			server.WaitForShutdown()
			return nil
		},
	}
}

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "compute a route for a one-off trip and print it",
		ArgsUsage: "SOURCE DESTINATION [WAYPOINT...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("route requires SOURCE and DESTINATION")
			}
			args := c.Args().Slice()
			t := trip.Trip{
				ID:          "cli",
				Source:      args[0],
				Destination: args[len(args)-1],
			}
			for _, name := range args[1 : len(args)-1] {
				t.Waypoints = append(t.Waypoints, trip.Waypoint{Location: name})
			}
			app := livetrack.NewApp(config.Config, maprender.NewLogView(log.Logger))
			return printJSON(app.SelectTrip(c.Context, t))
		},
	}
}

func trackOnceCommand() *cli.Command {
	return &cli.Command{
		Name:      "track-once",
		Usage:     "fetch one round of toll passes for a vehicle and print the snapshot",
		ArgsUsage: "VEHICLE_REG_NO",
		Action: func(c *cli.Context) error {
			regNo := strings.TrimSpace(c.Args().First())
			if regNo == "" {
				return fmt.Errorf("track-once requires VEHICLE_REG_NO")
			}
			snapshot, err := livetrack.TrackOnce(c.Context, config.Config, regNo)
			if err != nil {
				return err
			}
			return printJSON(snapshot)
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
