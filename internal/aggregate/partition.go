package aggregate

import (
	"github.com/nickhafer/448b-final-project/internal/domain"
)

// Partition splits sightings into those that can be drawn on the map and a
// count of those that cannot.
type Partition struct {
	Valid        []domain.Sighting
	InvalidCount int
}

// PartitionByCoordinates keeps records with numeric, in-range coordinates.
// Excluded records are only counted; they stay in every other aggregation.
func PartitionByCoordinates(records []domain.Sighting) Partition {
	p := Partition{Valid: make([]domain.Sighting, 0, len(records))}
	for _, r := range records {
		if r.HasValidCoordinates() {
			p.Valid = append(p.Valid, r)
			continue
		}
		p.InvalidCount++
	}
	return p
}
