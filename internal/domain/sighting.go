package domain

import (
	"math"
	"time"
)

// Column names of the expected input schema.
const (
	ColumnDateTime    = "Date_time"
	ColumnLatitude    = "latitude"
	ColumnLongitude   = "longitude"
	ColumnShape       = "UFO_shape"
	ColumnCountryCode = "Country_Code"
	ColumnDescription = "Description"
	ColumnDurationSec = "length_of_encounter_seconds"
	ColumnDuration    = "Encounter_Duration"
	ColumnHour        = "Hour"
	ColumnSeason      = "Season"
)

// RequiredColumns lists the header fields a source must provide.
var RequiredColumns = []string{
	ColumnDateTime,
	ColumnLatitude,
	ColumnLongitude,
	ColumnShape,
	ColumnCountryCode,
	ColumnDescription,
}

// RawRow is one parsed row from the data source, keyed by header name.
type RawRow map[string]string

// Season is the meteorological season a sighting falls in.
type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Seasons lists every season in calendar order starting with spring.
var Seasons = []Season{Spring, Summer, Fall, Winter}

// ParseSeason returns the season named by s. Matching is exact.
func ParseSeason(s string) (Season, bool) {
	switch Season(s) {
	case Spring, Summer, Fall, Winter:
		return Season(s), true
	default:
		return "", false
	}
}

// SeasonOf assigns a season from the month of t.
func SeasonOf(t time.Time) Season {
	// 0-indexed month, matching the source data convention.
	month := int(t.Month()) - 1
	switch {
	case month >= 2 && month <= 4:
		return Spring
	case month >= 5 && month <= 7:
		return Summer
	case month >= 8 && month <= 10:
		return Fall
	default:
		return Winter
	}
}

// Sighting is a normalized sighting record. It is immutable after
// normalization; copies are handed to every consumer. Latitude, Longitude
// and DurationSeconds may be NaN, so Sighting is not JSON-encoded directly.
type Sighting struct {
	Timestamp       time.Time
	Latitude        float64
	Longitude       float64
	Shape           string
	CountryCode     string
	Season          Season
	Hour            int
	DurationSeconds float64
	Duration        string
	Description     string
}

// HasValidCoordinates reports whether the sighting can be placed on a map:
// both coordinates numeric, latitude within [-90, 90] and longitude within
// [-180, 180].
func (s Sighting) HasValidCoordinates() bool {
	if math.IsNaN(s.Latitude) || math.IsNaN(s.Longitude) {
		return false
	}
	return math.Abs(s.Latitude) <= 90 && math.Abs(s.Longitude) <= 180
}

// HasDuration reports whether the numeric duration is usable.
func (s Sighting) HasDuration() bool {
	return !math.IsNaN(s.DurationSeconds)
}
