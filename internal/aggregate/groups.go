package aggregate

import (
	"sort"
	"time"

	"github.com/nickhafer/448b-final-project/internal/domain"
)

// MaxShapes caps the shape chart.
const MaxShapes = 10

// HoursPerDay is the width of the day/hour grid.
const HoursPerDay = 24

// Weekdays is the fixed row order of the day/hour heatmap.
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// WeekdayIndex returns the row of name in Weekdays, or -1.
func WeekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

// DayHour keys one heatmap cell.
type DayHour struct {
	Weekday string
	Hour    int
}

// YearCount is one point of the yearly chart.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// DayHourCount is one heatmap cell.
type DayHourCount struct {
	Weekday string `json:"weekday"`
	Hour    int    `json:"hour"`
	Count   int    `json:"count"`
}

// ShapeCount is one bar of the shape chart.
type ShapeCount struct {
	Shape string `json:"shape"`
	Count int    `json:"count"`
}

// CountByYear counts records per calendar year of their timestamp.
func CountByYear(records []domain.Sighting) map[int]int {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Timestamp.Year()]++
	}
	return counts
}

// CountByDayHour counts records per (weekday, hour of day). Only non-empty
// cells are present; see DenseDayHour for the full grid.
func CountByDayHour(records []domain.Sighting) map[DayHour]int {
	counts := make(map[DayHour]int)
	for _, r := range records {
		counts[DayHour{Weekday: r.Timestamp.Weekday().String(), Hour: r.Hour}]++
	}
	return counts
}

// TopShapes counts records per shape and returns at most limit entries by
// descending count. Ties keep the order in which shapes were first seen.
func TopShapes(records []domain.Sighting, limit int) []ShapeCount {
	index := make(map[string]int)
	shapes := make([]ShapeCount, 0)
	for _, r := range records {
		i, ok := index[r.Shape]
		if !ok {
			i = len(shapes)
			index[r.Shape] = i
			shapes = append(shapes, ShapeCount{Shape: r.Shape})
		}
		shapes[i].Count++
	}

	sort.SliceStable(shapes, func(a, b int) bool {
		return shapes[a].Count > shapes[b].Count
	})

	if limit >= 0 && len(shapes) > limit {
		shapes = shapes[:limit]
	}
	return shapes
}

// SortedYears flattens year counts into ascending year order.
func SortedYears(counts map[int]int) []YearCount {
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Year < out[b].Year })
	return out
}

// YearExtent returns the first and last year present. ok is false for an
// empty mapping, whose extent is undefined.
func YearExtent(counts map[int]int) (lo, hi int, ok bool) {
	for y := range counts {
		if !ok {
			lo, hi, ok = y, y, true
			continue
		}
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return lo, hi, ok
}

// DenseDayHour expands sparse counts into the full 7x24 grid in Weekdays
// order, hour ascending. Missing cells are zero.
func DenseDayHour(counts map[DayHour]int) []DayHourCount {
	out := make([]DayHourCount, 0, len(Weekdays)*HoursPerDay)
	for _, day := range Weekdays {
		for h := 0; h < HoursPerDay; h++ {
			out = append(out, DayHourCount{
				Weekday: day,
				Hour:    h,
				Count:   counts[DayHour{Weekday: day, Hour: h}],
			})
		}
	}
	return out
}

// MaxCount returns the largest value in counts, or 0.
func MaxCount[K comparable](counts map[K]int) int {
	m := 0
	for _, n := range counts {
		m = max(m, n)
	}
	return m
}
