// Package csvsource reads sighting rows from a delimited file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nickhafer/448b-final-project/internal/domain"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Source reads rows from a CSV file on disk.
// It implements dashboard.Source.
type Source struct {
	path  string
	comma rune
}

// New creates a Source for path. Files ending in .tsv are tab-delimited.
func New(path string) *Source {
	comma := ','
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		comma = '\t'
	}
	return &Source{path: path, comma: comma}
}

// ReadRows opens the file and reads every data row.
func (s *Source) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open sightings csv: %w", err)
	}
	defer f.Close()

	return ReadRows(ctx, f, s.comma)
}

// ReadRows reads a header line followed by data rows from r. Header names
// are kept verbatim; unknown columns pass through and are ignored later.
func ReadRows(ctx context.Context, r io.Reader, comma rune) ([]domain.RawRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		row := make(domain.RawRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
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
