package main

import (
	"delivery-itinerary-service/internal/adapters/csvtable"
	"delivery-itinerary-service/internal/domain"
	"delivery-itinerary-service/internal/report"
	"delivery-itinerary-service/internal/services"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

func tableFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "orders", Usage: "order table CSV", Required: true},
		&cli.StringFlag{Name: "vehicles", Usage: "vehicle table CSV", Required: true},
		&cli.StringFlag{Name: "strategy", Usage: "matrix strategy (haversine or osrm); defaults to MATRIX_STRATEGY"},
	}
}

func routeFlags() []cli.Flag {
	return append(tableFlags(),
		&cli.StringFlag{Name: "routes", Usage: "optimizer route table CSV", Required: true},
		&cli.IntFlag{Name: "status", Usage: "optimizer solve status (0 = success)"},
		&cli.IntFlag{Name: "depot-count", Usage: "number of depot rows at the head of the order table"},
	)
}

func summaryCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "aggregate one optimizer result",
		Flags: append(routeFlags(),
			&cli.StringFlag{Name: "format", Value: "text", Usage: "text or json"},
		),
		Action: func(c *cli.Context) error {
			s, err := runRoutes(c, env)
			if err != nil {
				return err
			}

			switch c.String("format") {
			case "text":
				return report.WriteSummary(c.App.Writer, s)
			case "json":
				return writeJSON(c.App.Writer, s)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
		},
	}
}

func mapRecordsCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "map-records",
		Usage: "flatten itineraries into travel-leg records",
		Flags: append(routeFlags(),
			&cli.StringFlag{Name: "format", Value: "csv", Usage: "csv or json"},
			&cli.BoolFlag{Name: "with-geometry", Usage: "fetch road geometry for each leg"},
		),
		Action: func(c *cli.Context) error {
			s, err := runRoutes(c, env)
			if err != nil {
				return err
			}

			records := services.Flatten(s.Itineraries)
			if c.Bool("with-geometry") {
				records, err = services.AttachLegRoutes(env.ctx, env.matrices.Router, records, env.cfg.Itinerary.Workers)
				if err != nil {
					return err
				}
			}

			switch c.String("format") {
			case "csv":
				return csvtable.WriteMapRecords(c.App.Writer, records)
			case "json":
				return writeJSON(c.App.Writer, records)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
		},
	}
}

func matrixCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:  "matrix",
		Usage: "build distance and time matrices over the order locations",
		Flags: tableFlags(),
		Action: func(c *cli.Context) error {
			p, err := env.pipeline(c)
			if err != nil {
				return err
			}
			tables, err := p.LoadTables(env.ctx)
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, map[string]any{
				"locations": tables.Locations,
				"distance":  tables.Matrices.Distance.Rows(),
				"time":      tables.Matrices.Time.Rows(),
			})
		},
	}
}

func runRoutes(c *cli.Context, env *environment) (*services.Summary, error) {
	stops, err := csvtable.ReadRoutesFile(c.String("routes"))
	if err != nil {
		return nil, err
	}

	p, err := env.pipeline(c)
	if err != nil {
		return nil, err
	}

	return p.Run(env.ctx, domain.RouteAssignment{Status: c.Int("status"), Stops: stops})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
