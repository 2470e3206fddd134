// Package source picks the sightings reader for a path.
package source

import (
	"path/filepath"
	"strings"

	"github.com/nickhafer/448b-final-project/internal/adapter/csvsource"
	"github.com/nickhafer/448b-final-project/internal/adapter/sqlite"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
)

// Kind names a source backend.
type Kind string

const (
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// KindOf infers the backend from the file extension. Anything that is not a
// SQLite database is read as delimited text.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindCSV
	}
}

// Open returns a reader for path and a function that releases it.
func Open(path string) (dashboard.Source, func() error, error) {
	if KindOf(path) == KindSQLite {
		src, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	}
	return csvsource.New(path), func() error { return nil }, nil
}
