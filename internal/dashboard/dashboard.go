// Package dashboard owns the loaded sightings and the filter store, and
// rebuilds the chart snapshot every time the filter changes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/domain"
	"github.com/nickhafer/448b-final-project/internal/filter"
	"github.com/nickhafer/448b-final-project/internal/observability"
)

// Source provides raw rows from the external data file.
type Source interface {
	ReadRows(ctx context.Context) ([]domain.RawRow, error)
}

// Publisher receives every recomputed snapshot.
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// Load reads and normalizes the dataset. Rows with an unparseable date are
// logged and dropped; only a source failure is returned as an error.
func Load(ctx context.Context, src Source, logger *slog.Logger, metrics *observability.Metrics) ([]domain.Sighting, error) {
	rows, err := src.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sightings: %w", err)
	}

	records, dropped := domain.Normalize(rows)
	for _, perr := range dropped {
		logger.Warn("dropping sighting with unparseable date",
			"row", perr.Row,
			"value", perr.Value,
		)
	}

	metrics.RecordsLoaded.Add(float64(len(records)))
	metrics.RecordsDropped.Add(float64(len(dropped)))
	logger.Info("sightings loaded",
		"rows", len(rows),
		"records", len(records),
		"dropped", len(dropped),
	)
	return records, nil
}

// Dashboard recomputes the chart snapshot from scratch on every filter change.
// The map partition covers every loaded record and is computed once.
type Dashboard struct {
	records        []domain.Sighting
	options        aggregate.Options
	partition      aggregate.Partition
	store          *filter.Store
	publisher      Publisher
	publishTimeout time.Duration
	logger         *slog.Logger
	metrics        *observability.Metrics

	// changeMu serializes Start, SetFilter and ResetFilters so each returns
	// the snapshot its own change produced.
	changeMu sync.Mutex

	mu     sync.RWMutex
	latest Snapshot
	ready  atomic.Bool
}

// New creates a Dashboard over records and subscribes it to store. Pass a
// nil publisher to disable snapshot publishing.
func New(records []domain.Sighting, store *filter.Store, publisher Publisher, publishTimeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	d := &Dashboard{
		records:        records,
		options:        aggregate.BuildOptions(records),
		partition:      aggregate.PartitionByCoordinates(records),
		store:          store,
		publisher:      publisher,
		publishTimeout: publishTimeout,
		logger:         logger,
		metrics:        metrics,
	}
	store.Subscribe(func(ctx context.Context, state filter.State) {
		d.Recompute(ctx, state)
	})
	if d.partition.InvalidCount > 0 {
		logger.Info("sightings without valid coordinates excluded from map",
			"invalid", d.partition.InvalidCount,
			"valid", len(d.partition.Valid),
		)
	}
	return d
}

// Start computes the initial snapshot for the store's current state. The
// recompute runs through the store so it cannot overwrite a concurrent change.
func (d *Dashboard) Start(ctx context.Context) Snapshot {
	d.changeMu.Lock()
	defer d.changeMu.Unlock()

	d.store.Notify(ctx)
	snap := d.Latest()
	d.ready.Store(true)
	d.metrics.DatasetReady.Set(1)
	d.logger.Info("dashboard ready", "records", len(d.records), "snapshot_id", snap.ID)
	return snap
}

// CheckReadiness returns nil once the initial snapshot has been computed.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("dashboard has not computed its first snapshot yet")
	}
	return nil
}

// Recompute filters and aggregates every record for state, stores the
// result as the latest snapshot and publishes it. Publish failures are
// logged, never returned. Callers outside the store listener should go
// through SetFilter so the stored filter and the snapshot agree.
func (d *Dashboard) Recompute(ctx context.Context, state filter.State) Snapshot {
	start := time.Now()

	filtered := aggregate.ApplyFilters(d.records, state)
	snap := Snapshot{
		ID:         uuid.NewString(),
		Filter:     state,
		ComputedAt: domain.Now(),
		Total:      len(filtered),
		Years:      aggregate.CountByYear(filtered),
		DayHours:   aggregate.CountByDayHour(filtered),
		Shapes:     aggregate.TopShapes(filtered, aggregate.MaxShapes),
		Partition:  d.partition,
		Durations:  aggregate.SummarizeDurations(filtered),
	}

	d.mu.Lock()
	d.latest = snap
	d.mu.Unlock()

	d.metrics.Recomputes.Inc()
	d.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	d.metrics.FilteredRecords.Set(float64(snap.Total))
	d.metrics.InvalidCoordinates.Set(float64(snap.Partition.InvalidCount))

	d.logger.Debug("snapshot recomputed",
		"snapshot_id", snap.ID,
		"filter", state.Key(),
		"total", snap.Total,
		"duration", time.Since(start),
	)

	d.publish(ctx, snap)
	return snap
}

func (d *Dashboard) publish(ctx context.Context, snap Snapshot) {
	if d.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	start := time.Now()
	err := d.publisher.Publish(pubCtx, snap)
	d.metrics.PublishDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.SnapshotsPublished.WithLabelValues("error").Inc()
		d.logger.Warn("publish snapshot failed",
			"snapshot_id", snap.ID,
			"filter", snap.Filter.Key(),
			"error", err,
		)
		return
	}
	d.metrics.SnapshotsPublished.WithLabelValues("success").Inc()
}

// SetFilter changes one filter field, which synchronously recomputes, and
// returns the resulting snapshot.
func (d *Dashboard) SetFilter(ctx context.Context, field filter.Field, value string) (Snapshot, error) {
	d.changeMu.Lock()
	defer d.changeMu.Unlock()

	if err := d.store.Set(ctx, field, value); err != nil {
		return Snapshot{}, err
	}
	d.metrics.FilterChanges.WithLabelValues(string(field)).Inc()
	return d.Latest(), nil
}

// ResetFilters clears every filter, which synchronously recomputes, and
// returns the resulting snapshot.
func (d *Dashboard) ResetFilters(ctx context.Context) Snapshot {
	d.changeMu.Lock()
	defer d.changeMu.Unlock()

	d.store.Reset(ctx)
	d.metrics.FilterChanges.WithLabelValues("reset").Inc()
	return d.Latest()
}

// Filter returns the current filter state.
func (d *Dashboard) Filter() filter.State {
	return d.store.Get()
}

// Latest returns the most recent snapshot.
func (d *Dashboard) Latest() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest
}

// Options returns the selectable filter values.
func (d *Dashboard) Options() aggregate.Options {
	return d.options
}

// Records returns the loaded sightings. Callers must not modify them.
func (d *Dashboard) Records() []domain.Sighting {
	return d.records
}
