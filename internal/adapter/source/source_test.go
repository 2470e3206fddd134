package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickhafer/448b-final-project/internal/adapter/csvsource"
	"github.com/nickhafer/448b-final-project/internal/adapter/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"data/ufo.csv", KindCSV},
		{"data/ufo.tsv", KindCSV},
		{"data/ufo", KindCSV},
		{"data/ufo.db", KindSQLite},
		{"data/UFO.SQLITE", KindSQLite},
		{"data/ufo.sqlite3", KindSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.path))
		})
	}
}

func TestOpen_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufo.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Date_time,latitude,longitude,UFO_shape,Country_Code,Description\n"+
			"1999-07-04 21:30:00,44.5,-93.25,light,USA,hovered\n"), 0o600))

	src, closeFn, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	assert.IsType(t, &csvsource.Source{}, src)

	rows, err := src.ReadRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpen_SQLite(t *testing.T) {
	src, closeFn, err := Open(filepath.Join(t.TempDir(), "ufo.db"))
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Source{}, src)
	assert.NoError(t, closeFn())
}
