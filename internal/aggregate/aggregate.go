// Package aggregate turns sightings and a filter selection into the grouped
// counts the dashboard charts draw.
//
// Every function here is a pure function of its arguments: results are
// recomputed from scratch on each call and nothing is cached between calls.
// Empty inputs produce empty (non-nil) results, so callers building chart
// scales must handle an empty domain themselves.
package aggregate

import (
	"fmt"

	"github.com/nickhafer/448b-final-project/internal/domain"
	"github.com/nickhafer/448b-final-project/internal/filter"
)

// GroupBy selects the key function used to bucket sightings.
type GroupBy int

const (
	YearGroup GroupBy = iota
	DayHourGroup
	ShapeGroup
)

func (g GroupBy) String() string {
	switch g {
	case YearGroup:
		return "year"
	case DayHourGroup:
		return "dayhour"
	case ShapeGroup:
		return "shape"
	default:
		return fmt.Sprintf("GroupBy(%d)", int(g))
	}
}

// ParseGroupBy maps "year", "dayhour" or "shape" to a GroupBy.
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "year":
		return YearGroup, nil
	case "dayhour":
		return DayHourGroup, nil
	case "shape":
		return ShapeGroup, nil
	default:
		return 0, fmt.Errorf("unknown group %q", s)
	}
}

// Result holds the counts for one GroupBy. Only the field matching GroupBy
// is populated.
type Result struct {
	GroupBy  GroupBy
	Years    map[int]int
	DayHours map[DayHour]int
	Shapes   []ShapeCount
}

// Len returns the number of groups.
func (r Result) Len() int {
	switch r.GroupBy {
	case YearGroup:
		return len(r.Years)
	case DayHourGroup:
		return len(r.DayHours)
	case ShapeGroup:
		return len(r.Shapes)
	default:
		return 0
	}
}

// Total sums the group counts. For ShapeGroup this only covers the shapes
// that made the top list.
func (r Result) Total() int {
	total := 0
	for _, n := range r.Years {
		total += n
	}
	for _, n := range r.DayHours {
		total += n
	}
	for _, sc := range r.Shapes {
		total += sc.Count
	}
	return total
}

// Aggregate filters records by state and counts them by the requested group.
func Aggregate(records []domain.Sighting, state filter.State, groupBy GroupBy) Result {
	filtered := ApplyFilters(records, state)
	res := Result{GroupBy: groupBy}
	switch groupBy {
	case YearGroup:
		res.Years = CountByYear(filtered)
	case DayHourGroup:
		res.DayHours = CountByDayHour(filtered)
	case ShapeGroup:
		res.Shapes = TopShapes(filtered, MaxShapes)
	}
	return res
}

// ApplyFilters returns the records passing every active predicate: shape,
// country and season equality, each skipped when its sentinel is selected.
// The input slice is never modified.
func ApplyFilters(records []domain.Sighting, state filter.State) []domain.Sighting {
	if !state.ShapeActive() && !state.CountryActive() && !state.SeasonActive() {
		return records
	}

	out := make([]domain.Sighting, 0, len(records))
	for _, r := range records {
		if state.ShapeActive() && r.Shape != state.Shape {
			continue
		}
		if state.CountryActive() && r.CountryCode != state.Country {
			continue
		}
		if state.SeasonActive() && string(r.Season) != state.Season {
			continue
		}
		out = append(out, r)
	}
	return out
}
