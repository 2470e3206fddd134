// Package filter holds the dashboard's cross-filter selection and notifies
// subscribers whenever it changes.
package filter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nickhafer/448b-final-project/internal/domain"
)

// Sentinel selections meaning "no filter on this dimension".
const (
	AllShapes    = "All Shapes"
	AllCountries = "All Countries"
	AllSeasons   = "All Seasons"
)

var (
	// ErrUnknownField is returned by Set for a field name it does not know.
	ErrUnknownField = errors.New("unknown filter field")
	// ErrInvalidValue is returned by Set when a value cannot be selected.
	ErrInvalidValue = errors.New("invalid filter value")
)

// Field names one filterable dimension.
type Field string

const (
	FieldShape   Field = "shape"
	FieldCountry Field = "country"
	FieldSeason  Field = "season"
)

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldShape, FieldCountry, FieldSeason:
		return Field(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// State is the current selection for every dimension.
type State struct {
	Shape   string `json:"shape"`
	Country string `json:"country"`
	Season  string `json:"season"`
}

// Default returns the state with every dimension unfiltered.
func Default() State {
	return State{Shape: AllShapes, Country: AllCountries, Season: AllSeasons}
}

// ShapeActive reports whether the shape predicate applies.
func (s State) ShapeActive() bool { return s.Shape != AllShapes }

// CountryActive reports whether the country predicate applies.
func (s State) CountryActive() bool { return s.Country != AllCountries }

// SeasonActive reports whether the season predicate applies.
func (s State) SeasonActive() bool { return s.Season != AllSeasons }

// Key is a stable string form of the state, used as a message key.
func (s State) Key() string {
	return s.Shape + "|" + s.Country + "|" + s.Season
}

// With returns a copy of s with one field replaced. An empty value selects
// the field's sentinel.
func (s State) With(field Field, value string) (State, error) {
	switch field {
	case FieldShape:
		if value == "" {
			value = AllShapes
		}
		s.Shape = value
	case FieldCountry:
		if value == "" {
			value = AllCountries
		}
		s.Country = value
	case FieldSeason:
		if value == "" {
			value = AllSeasons
		}
		if _, ok := domain.ParseSeason(value); !ok && value != AllSeasons {
			return s, fmt.Errorf("%w: season %q", ErrInvalidValue, value)
		}
		s.Season = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s, nil
}

// Listener is invoked synchronously with the new state after each change.
// It must not call back into the Store.
type Listener func(ctx context.Context, state State)

// Store is the process-wide filter state. Every Set replaces one field and
// runs all listeners to completion before returning; the last Set wins.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
}

// NewStore creates a store initialized to Default.
func NewStore() *Store {
	return &Store{state: Default()}
}

// Get returns the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener. Listeners run in registration order.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Set replaces one field and notifies every listener.
func (s *Store) Set(ctx context.Context, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.With(field, value)
	if err != nil {
		return err
	}
	s.state = next
	s.notify(ctx)
	return nil
}

// Reset restores every field to its sentinel and notifies every listener.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Default()
	s.notify(ctx)
}

// Notify runs every listener with the current state without changing it.
func (s *Store) Notify(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notify(ctx)
	return s.state
}

// notify must be called with mu held. Holding the lock across listeners
// keeps recomputes from overlapping.
func (s *Store) notify(ctx context.Context) {
	for _, l := range s.listeners {
		l(ctx, s.state)
	}
}
