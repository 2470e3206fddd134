// Package sqlite reads sighting rows from a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nickhafer/448b-final-project/internal/domain"
	_ "modernc.org/sqlite"
)

// Table is the table rows are read from. Column names follow the CSV header.
const Table = "sightings"

// ErrMissingColumn is returned when the table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Source reads every row of the sightings table.
// It implements dashboard.Source.
type Source struct {
	db *sql.DB
}

// Open opens the database at path.
func Open(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sightings db: %w", err)
	}
	return &Source{db: db}, nil
}

// NewSource wraps an existing handle. The caller keeps ownership of db.
func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

// ReadRows returns every row keyed by column name. NULL becomes an empty
// string; numeric and time values are formatted by database/sql.
func (s *Source) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT * FROM `+Table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if err := checkColumns(cols); err != nil {
		return nil, err
	}

	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}

	var out []domain.RawRow
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out)+1, err)
		}
		row := make(domain.RawRow, len(cols))
		for i, c := range cols {
			row[c] = vals[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", Table, err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

func checkColumns(cols []string) error {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
