package dashboard

import (
	"time"

	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/filter"
)

// Snapshot is the output of one full recompute.
type Snapshot struct {
	ID         string
	Filter     filter.State
	ComputedAt time.Time
	Total      int

	Years     map[int]int
	DayHours  map[aggregate.DayHour]int
	Shapes    []aggregate.ShapeCount
	Partition aggregate.Partition
	Durations aggregate.DurationSummary
}

// Summary is the serialized form of a Snapshot. Map points are reduced to
// counts; the GeoJSON endpoint serves the points themselves.
type Summary struct {
	ID           string                    `json:"id"`
	Filter       filter.State              `json:"filter"`
	ComputedAt   time.Time                 `json:"computed_at"`
	Total        int                       `json:"total"`
	Years        []aggregate.YearCount     `json:"years"`
	DayHours     []aggregate.DayHourCount  `json:"day_hours"`
	Shapes       []aggregate.ShapeCount    `json:"shapes"`
	ValidCount   int                       `json:"valid_count"`
	InvalidCount int                       `json:"invalid_count"`
	Durations    aggregate.DurationSummary `json:"durations"`
}

// Summary flattens the snapshot into chart-ready, ordered slices.
func (s Snapshot) Summary() Summary {
	return Summary{
		ID:           s.ID,
		Filter:       s.Filter,
		ComputedAt:   s.ComputedAt,
		Total:        s.Total,
		Years:        aggregate.SortedYears(s.Years),
		DayHours:     aggregate.DenseDayHour(s.DayHours),
		Shapes:       s.Shapes,
		ValidCount:   len(s.Partition.Valid),
		InvalidCount: s.Partition.InvalidCount,
		Durations:    s.Durations,
	}
}
