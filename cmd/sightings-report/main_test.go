package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date_time,latitude,longitude,UFO_shape,Country_Code,Description,Season
1999-07-04 21:30:00,44.5,-93.25,light,USA,hovered,Summer
2000-07-05 22:00:00,40.1,-88.2,light,USA,zigzag,Summer
2000-12-24 03:00:00,,,disk,CAN,no coordinates,Winter
not a date,10,10,orb,USA,dropped,Summer
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ufo.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return path
}

func TestRun_YearGroup(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-source", writeSample(t), "-shape", "light", "-group", "year"}, &stdout, &stderr)
	require.NoError(t, err)

	var got struct {
		Group string                `json:"group"`
		Total int                   `json:"total"`
		Data  []aggregate.YearCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "year", got.Group)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, []aggregate.YearCount{{Year: 1999, Count: 1}, {Year: 2000, Count: 1}}, got.Data)
	assert.Contains(t, stderr.String(), "unparseable date")
}

func TestRun_All(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-source", writeSample(t), "-season", "Winter"}, &stdout, &stderr)
	require.NoError(t, err)

	var got struct {
		Total        int `json:"total"`
		InvalidCount int `json:"invalid_count"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.InvalidCount)
}

func TestRun_BadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown group", []string{"-group", "month"}},
		{"bad season", []string{"-season", "Monsoon"}},
		{"unknown flag", []string{"-colour", "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), append([]string{"-source", writeSample(t)}, tt.args...), &stdout, &stderr)
			require.Error(t, err)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_MissingSource(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-source", filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr)

	require.Error(t, err)
}
