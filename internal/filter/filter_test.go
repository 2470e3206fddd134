package filter_test

import (
	"context"
	"testing"

	"github.com/nickhafer/448b-final-project/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_StartsUnfiltered(t *testing.T) {
	s := filter.NewStore()
	got := s.Get()

	assert.Equal(t, filter.Default(), got)
	assert.False(t, got.ShapeActive())
	assert.False(t, got.CountryActive())
	assert.False(t, got.SeasonActive())
}

func TestStore_SetNotifiesWithNewState(t *testing.T) {
	s := filter.NewStore()
	var seen []filter.State
	s.Subscribe(func(_ context.Context, st filter.State) {
		seen = append(seen, st)
	})

	require.NoError(t, s.Set(context.Background(), filter.FieldShape, "circle"))

	require.Len(t, seen, 1)
	assert.Equal(t, "circle", seen[0].Shape)
	assert.Equal(t, filter.AllCountries, seen[0].Country)
	assert.Equal(t, seen[0], s.Get())
}

func TestStore_ListenersRunInOrder(t *testing.T) {
	s := filter.NewStore()
	var order []string
	s.Subscribe(func(context.Context, filter.State) { order = append(order, "first") })
	s.Subscribe(func(context.Context, filter.State) { order = append(order, "second") })

	s.Reset(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_LastWriteWins(t *testing.T) {
	s := filter.NewStore()
	calls := 0
	s.Subscribe(func(context.Context, filter.State) { calls++ })
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, filter.FieldCountry, "USA"))
	require.NoError(t, s.Set(ctx, filter.FieldCountry, "CAN"))
	require.NoError(t, s.Set(ctx, filter.FieldSeason, "Winter"))

	assert.Equal(t, 3, calls, "every set triggers its own recompute")
	assert.Equal(t, filter.State{Shape: filter.AllShapes, Country: "CAN", Season: "Winter"}, s.Get())
}

func TestStore_EmptyValueSelectsSentinel(t *testing.T) {
	s := filter.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, filter.FieldShape, "disk"))

	require.NoError(t, s.Set(ctx, filter.FieldShape, ""))

	assert.Equal(t, filter.AllShapes, s.Get().Shape)
}

func TestStore_RejectsInvalidInput(t *testing.T) {
	s := filter.NewStore()
	calls := 0
	s.Subscribe(func(context.Context, filter.State) { calls++ })
	ctx := context.Background()

	err := s.Set(ctx, filter.FieldSeason, "Monsoon")
	require.ErrorIs(t, err, filter.ErrInvalidValue)

	err = s.Set(ctx, filter.Field("color"), "green")
	require.ErrorIs(t, err, filter.ErrUnknownField)

	assert.Zero(t, calls)
	assert.Equal(t, filter.Default(), s.Get())
}

func TestStore_ResetRestoresSentinels(t *testing.T) {
	s := filter.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, filter.FieldShape, "circle"))
	require.NoError(t, s.Set(ctx, filter.FieldSeason, "Fall"))

	s.Reset(ctx)

	assert.Equal(t, filter.Default(), s.Get())
}

func TestParseField(t *testing.T) {
	for _, name := range []string{"shape", "country", "season"} {
		f, err := filter.ParseField(name)
		require.NoError(t, err)
		assert.Equal(t, filter.Field(name), f)
	}

	_, err := filter.ParseField("Shape")
	assert.ErrorIs(t, err, filter.ErrUnknownField)
}

func TestState_Key(t *testing.T) {
	st := filter.State{Shape: "circle", Country: "USA", Season: "Summer"}
	assert.Equal(t, "circle|USA|Summer", st.Key())
}

func TestStore_NotifyRunsListenersWithCurrentState(t *testing.T) {
	s := filter.NewStore()
	require.NoError(t, s.Set(context.Background(), filter.FieldCountry, "USA"))
	var seen []filter.State
	s.Subscribe(func(_ context.Context, st filter.State) {
		seen = append(seen, st)
	})

	got := s.Notify(context.Background())

	assert.Equal(t, "USA", got.Country)
	require.Len(t, seen, 1)
	assert.Equal(t, got, seen[0])
	assert.Equal(t, got, s.Get())
}
