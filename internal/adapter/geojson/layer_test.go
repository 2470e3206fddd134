package geojson

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sighting(lat, lon float64, desc string) domain.Sighting {
	return domain.Sighting{
		Timestamp:   time.Date(1999, 7, 4, 21, 30, 0, 0, time.UTC),
		Latitude:    lat,
		Longitude:   lon,
		Shape:       "light",
		CountryCode: "USA",
		Duration:    "5 minutes",
		Description: desc,
	}
}

func TestFeatureCollection(t *testing.T) {
	records := []domain.Sighting{
		sighting(45, -93, "short"),
		sighting(91, -93, "bad latitude"),
		sighting(math.NaN(), 10, "no latitude"),
	}

	layer := FeatureCollection(aggregate.PartitionByCoordinates(records))

	require.Len(t, layer.Collection.Features, 1)
	assert.Equal(t, 2, layer.InvalidCount)

	f := layer.Collection.Features[0]
	assert.Equal(t, []float64{-93, 45}, f.Geometry.Point)
	assert.Equal(t, "1999-07-04 21:30:00", f.Properties["date"])
	assert.Equal(t, "light", f.Properties["shape"])
	assert.Equal(t, "5 minutes", f.Properties["duration"])
	assert.Equal(t, "short", f.Properties["description"])
	assert.Equal(t, false, f.Properties["truncated"])
}

func TestFeature_TruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("a", 150)

	f := Feature(sighting(10, 10, long))

	assert.Equal(t, strings.Repeat("a", 100)+"...", f.Properties["description"])
	assert.Equal(t, long, f.Properties["description_full"])
	assert.Equal(t, true, f.Properties["truncated"])
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		limit     int
		want      string
		truncated bool
	}{
		{"shorter", "abc", 5, "abc", false},
		{"exact", "abcde", 5, "abcde", false},
		{"longer", "abcdef", 5, "abcde...", true},
		{"multibyte", "ééééé", 3, "ééé...", true},
		{"empty", "", 5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}

func TestLayer_MarshalJSON(t *testing.T) {
	layer := FeatureCollection(aggregate.PartitionByCoordinates([]domain.Sighting{
		sighting(45, -93, "hovered"),
		sighting(0, 200, "bad longitude"),
	}))

	b, err := json.Marshal(layer)
	require.NoError(t, err)

	var got struct {
		Type         string            `json:"type"`
		Features     []json.RawMessage `json:"features"`
		InvalidCount int               `json:"invalid_count"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "FeatureCollection", got.Type)
	assert.Len(t, got.Features, 1)
	assert.Equal(t, 1, got.InvalidCount)
}

func TestLayer_MarshalJSON_Empty(t *testing.T) {
	b, err := json.Marshal(FeatureCollection(aggregate.Partition{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"FeatureCollection","features":[],"invalid_count":0}`, string(b))
}
