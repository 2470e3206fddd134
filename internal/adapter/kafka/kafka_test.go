package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
	"github.com/nickhafer/448b-final-project/internal/filter"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		ID:         "snap-1",
		Filter:     filter.State{Shape: "disk", Country: filter.AllCountries, Season: "Summer"},
		ComputedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
		Total:      2,
		Years:      map[int]int{1999: 2},
		Shapes:     []aggregate.ShapeCount{{Shape: "disk", Count: 2}},
		Partition:  aggregate.Partition{InvalidCount: 2},
	}
}

func TestSerializeToMessage(t *testing.T) {
	snap := testSnapshot()

	msg, err := serializeToMessage(snap)
	require.NoError(t, err)

	assert.Equal(t, []byte("disk|All Countries|Summer"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "snapshot_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("snap-1"), msg.Headers[0].Value)
	assert.Equal(t, "computed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[1].Value)

	var sum dashboard.Summary
	require.NoError(t, json.Unmarshal(msg.Value, &sum))
	assert.Equal(t, "snap-1", sum.ID)
	assert.Equal(t, snap.Filter, sum.Filter)
	assert.Equal(t, []aggregate.YearCount{{Year: 1999, Count: 2}}, sum.Years)
	assert.Len(t, sum.DayHours, 7*24)
	assert.Equal(t, 2, sum.InvalidCount)
}

func TestPublisher_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := &Publisher{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, p.Publish(context.Background(), testSnapshot()))
	require.NoError(t, p.Close())

	require.Len(t, fw.msgs, 1)
	assert.Equal(t, []byte("disk|All Countries|Summer"), fw.msgs[0].Key)
	assert.True(t, fw.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("leader not available")}
	p := &Publisher{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.Publish(context.Background(), testSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "snap-1")
	assert.Contains(t, err.Error(), "leader not available")
}
