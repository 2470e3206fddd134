package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate is returned when a row's Date_time cannot be parsed.
var ErrUnparseableDate = errors.New("unparseable date")

// ParseError describes a row rejected by the normalizer.
type ParseError struct {
	Row   int    // zero-based index into the input rows
	Value string // raw Date_time value
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, ColumnDateTime, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// dateLayouts are tried in order. The export uses the first; the others
// cover hand-edited files and re-exports from spreadsheet tools.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"2006-01-02",
}

// Normalize converts raw rows into sightings. Rows with an unparseable
// Date_time are skipped and reported in the returned slice of errors; every
// other anomaly degrades to a NaN or empty field. Output order follows
// input order.
func Normalize(rows []RawRow) ([]Sighting, []*ParseError) {
	out := make([]Sighting, 0, len(rows))
	var dropped []*ParseError
	for i, row := range rows {
		s, err := NormalizeRow(row)
		if err != nil {
			dropped = append(dropped, &ParseError{Row: i, Value: row[ColumnDateTime], Err: err})
			continue
		}
		out = append(out, s)
	}
	return out, dropped
}

// NormalizeRow converts a single raw row into a sighting.
func NormalizeRow(row RawRow) (Sighting, error) {
	ts, err := parseTimestamp(row[ColumnDateTime])
	if err != nil {
		return Sighting{}, err
	}

	hour, ok := parseHour(row[ColumnHour])
	if !ok {
		hour = ts.Hour()
	}

	season, ok := ParseSeason(strings.TrimSpace(row[ColumnSeason]))
	if !ok {
		season = SeasonOf(ts)
	}

	duration := parseFloatOrNaN(row[ColumnDurationSec])
	if duration < 0 {
		duration = math.NaN()
	}

	return Sighting{
		Timestamp:       ts,
		Latitude:        parseFloatOrNaN(row[ColumnLatitude]),
		Longitude:       parseFloatOrNaN(row[ColumnLongitude]),
		Shape:           strings.TrimSpace(row[ColumnShape]),
		CountryCode:     strings.TrimSpace(row[ColumnCountryCode]),
		Season:          season,
		Hour:            hour,
		DurationSeconds: duration,
		Duration:        strings.TrimSpace(row[ColumnDuration]),
		Description:     strings.TrimSpace(row[ColumnDescription]),
	}, nil
}

// parseTimestamp reads a zone-less Date_time as wall-clock time in UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// parseFloatOrNaN parses a string as float64, returning NaN on failure.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// parseHour accepts a precomputed hour column. Values such as "20.0" occur
// in re-exported files and are accepted when integral.
func parseHour(s string) (int, bool) {
	v := parseFloatOrNaN(s)
	if math.IsNaN(v) || v != math.Trunc(v) || v < 0 || v > 23 {
		return 0, false
	}
	return int(v), true
}
