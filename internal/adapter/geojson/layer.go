// Package geojson builds the map layer for sightings with plottable coordinates.
package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/domain"
	geojson "github.com/paulmach/go.geojson"
)

// DescriptionLimit is the number of characters shown before "Show More".
const DescriptionLimit = 100

const dateLayout = "2006-01-02 15:04:05"

// Layer is a FeatureCollection plus the number of sightings that could not
// be placed on the map. It marshals as a FeatureCollection with an extra
// "invalid_count" member.
type Layer struct {
	Collection   *geojson.FeatureCollection
	InvalidCount int
}

// FeatureCollection converts the valid side of p into point features.
func FeatureCollection(p aggregate.Partition) Layer {
	fc := geojson.NewFeatureCollection()
	for _, s := range p.Valid {
		fc.AddFeature(Feature(s))
	}
	return Layer{Collection: fc, InvalidCount: p.InvalidCount}
}

// Feature converts one sighting into a point feature. Coordinates are
// [longitude, latitude].
func Feature(s domain.Sighting) *geojson.Feature {
	f := geojson.NewPointFeature([]float64{s.Longitude, s.Latitude})
	short, truncated := Truncate(s.Description, DescriptionLimit)
	f.SetProperty("date", s.Timestamp.Format(dateLayout))
	f.SetProperty("shape", s.Shape)
	f.SetProperty("duration", s.Duration)
	f.SetProperty("country", s.CountryCode)
	f.SetProperty("description", short)
	f.SetProperty("description_full", s.Description)
	f.SetProperty("truncated", truncated)
	return f
}

// Truncate shortens s to limit characters followed by "...". It reports
// whether anything was cut.
func Truncate(s string, limit int) (string, bool) {
	r := []rune(s)
	if len(r) <= limit {
		return s, false
	}
	return string(r[:limit]) + "...", true
}

// MarshalJSON writes the collection with invalid_count as a foreign member.
func (l Layer) MarshalJSON() ([]byte, error) {
	fc := l.Collection
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	raw, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	// An empty collection must still carry a features array.
	if _, ok := members["features"]; !ok || string(members["features"]) == "null" {
		members["features"] = json.RawMessage("[]")
	}
	members["invalid_count"] = json.RawMessage(fmt.Sprint(l.InvalidCount))
	return json.Marshal(members)
}
