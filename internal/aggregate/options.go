package aggregate

import (
	"strings"

	"github.com/nickhafer/448b-final-project/internal/domain"
	"github.com/nickhafer/448b-final-project/internal/filter"
)

// Options lists the selectable values for each filter control, sentinel
// first.
type Options struct {
	Shapes    []string `json:"shapes"`
	Countries []string `json:"countries"`
	Seasons   []string `json:"seasons"`
}

// BuildOptions collects distinct shapes and non-blank country codes in the
// order first seen. Seasons are the fixed calendar list.
func BuildOptions(records []domain.Sighting) Options {
	opts := Options{
		Shapes:    []string{filter.AllShapes},
		Countries: []string{filter.AllCountries},
		Seasons:   []string{filter.AllSeasons},
	}

	seenShape := make(map[string]bool)
	seenCountry := make(map[string]bool)
	for _, r := range records {
		if !seenShape[r.Shape] {
			seenShape[r.Shape] = true
			opts.Shapes = append(opts.Shapes, r.Shape)
		}
		if strings.TrimSpace(r.CountryCode) == "" || seenCountry[r.CountryCode] {
			continue
		}
		seenCountry[r.CountryCode] = true
		opts.Countries = append(opts.Countries, r.CountryCode)
	}

	for _, s := range domain.Seasons {
		opts.Seasons = append(opts.Seasons, string(s))
	}
	return opts
}
