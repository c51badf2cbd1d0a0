package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	env := &environment{}

	return &cli.App{
		Name:        "itinerary",
		Usage:       "post-process optimizer routes into delivery itineraries",
		Description: "Reads order, vehicle and route tables from CSV and reports itineraries, map records or matrices.",
		Before:      env.setup,
		After:       env.close,
		Commands: []*cli.Command{
			summaryCommand(env),
			mapRecordsCommand(env),
			matrixCommand(env),
		},
	}
}
