// Command sightings-report loads the sightings dataset, applies a filter
// selection and prints the aggregations as JSON.
//
// Usage:
//
//	go run ./cmd/sightings-report \
//	  -source data/ufo-sightings-transformed.csv \
//	  -shape light -country USA -season Summer \
//	  -group year
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nickhafer/448b-final-project/internal/adapter/source"
	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
	"github.com/nickhafer/448b-final-project/internal/filter"
	"github.com/nickhafer/448b-final-project/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

const groupAll = "all"

type groupReport struct {
	Group  string       `json:"group"`
	Filter filter.State `json:"filter"`
	Total  int          `json:"total"`
	Data   any          `json:"data"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "sightings-report:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sightings-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sourcePath := fs.String("source", "data/ufo-sightings-transformed.csv", "path to the sightings CSV or SQLite database")
	shape := fs.String("shape", filter.AllShapes, "shape to keep")
	country := fs.String("country", filter.AllCountries, "ISO alpha-3 country code to keep")
	season := fs.String("season", filter.AllSeasons, "season to keep (Spring, Summer, Fall, Winter)")
	group := fs.String("group", groupAll, "aggregation to print: year, dayhour, shape or all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := buildState(*shape, *country, *season)
	if err != nil {
		return err
	}
	var groupBy aggregate.GroupBy
	if *group != groupAll {
		if groupBy, err = aggregate.ParseGroupBy(*group); err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())

	src, closeSource, err := source.Open(*sourcePath)
	if err != nil {
		return err
	}
	defer closeSource() //nolint:errcheck // read-only source
	records, err := dashboard.Load(ctx, src, logger, metrics)
	if err != nil {
		return err
	}

	var out any
	if *group == groupAll {
		d := dashboard.New(records, filter.NewStore(), nil, time.Second, logger, metrics)
		out = d.Recompute(ctx, state).Summary()
	} else {
		out = report(aggregate.Aggregate(records, state, groupBy), state)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func buildState(shape, country, season string) (filter.State, error) {
	state := filter.Default()
	var err error
	if state, err = state.With(filter.FieldShape, shape); err != nil {
		return state, err
	}
	if state, err = state.With(filter.FieldCountry, country); err != nil {
		return state, err
	}
	return state.With(filter.FieldSeason, season)
}

func report(res aggregate.Result, state filter.State) groupReport {
	r := groupReport{Group: res.GroupBy.String(), Filter: state, Total: res.Total()}
	switch res.GroupBy {
	case aggregate.YearGroup:
		r.Data = aggregate.SortedYears(res.Years)
	case aggregate.DayHourGroup:
		r.Data = aggregate.DenseDayHour(res.DayHours)
	case aggregate.ShapeGroup:
		r.Data = res.Shapes
	}
	return r
}
