package aggregate

import (
	"sort"

	"github.com/nickhafer/448b-final-project/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DurationSummary describes encounter lengths in seconds. Records without a
// numeric duration are not counted.
type DurationSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_seconds"`
	Median float64 `json:"median_seconds"`
	Max    float64 `json:"max_seconds"`
}

// SummarizeDurations computes the summary over records with a usable
// duration. The median is the empirical 0.5 quantile.
func SummarizeDurations(records []domain.Sighting) DurationSummary {
	xs := make([]float64, 0, len(records))
	for _, r := range records {
		if r.HasDuration() {
			xs = append(xs, r.DurationSeconds)
		}
	}
	if len(xs) == 0 {
		return DurationSummary{}
	}

	sort.Float64s(xs)
	return DurationSummary{
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		Max:    floats.Max(xs),
	}
}
