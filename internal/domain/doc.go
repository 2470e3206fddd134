// Package domain models recorded UFO sighting data.
//
// # Data Source
//
// Sightings come from the NUFORC-derived "ufo-sightings-transformed" CSV
// export. Each row is one reported event. The dashboard reads the file once
// at startup; rows are never written back.
//
// # Column Conventions
//
// Header names are matched exactly (case-sensitive). Unknown columns are
// ignored.
//
//	Date_time                    local date and time of the sighting, e.g. "1949-10-10 20:30:00"
//	latitude, longitude          decimal degrees; blanks and junk become NaN
//	UFO_shape                    free-form category, e.g. "circle", "light", "disk"
//	Country_Code                 ISO 3166-1 alpha-3 code, e.g. "USA"; may be empty
//	Description                  witness summary text
//	length_of_encounter_seconds  optional numeric duration
//	Encounter_Duration           optional human text, e.g. "45 minutes"
//	Hour                         optional precomputed hour of day (0-23)
//	Season                       optional precomputed season
//
// Date_time carries no zone. Values are interpreted as wall-clock time and
// stored in UTC so year, weekday and hour match what the witness reported.
//
// # Seasons
//
// When the Season column is missing or invalid the season is derived from
// the month (0-indexed as in the source data):
//
//	2-4  Spring (March-May)
//	5-7  Summer (June-August)
//	8-10 Fall   (September-November)
//	else Winter
//
// # Invalid Values
//
// A row whose Date_time cannot be parsed is dropped with a [ParseError].
// Non-numeric coordinates and durations are kept as NaN so that each
// consumer decides on its own: a sighting without usable coordinates still
// counts toward the yearly, weekday/hour and shape charts but is left off
// the map. See [Sighting.HasValidCoordinates].
package domain
