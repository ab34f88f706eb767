package eventlog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reusehub/pkg/eventlog"
)

func TestAppendAndLoad(t *testing.T) {
	log := eventlog.NewMemoryLog()
	ctx := context.Background()
	stream := eventlog.OrderStream(55)

	err := log.Append(ctx, stream, 0, []eventlog.Entry{
		{Kind: eventlog.OrderStarted, Payload: json.RawMessage(`{"order_id":55}`)},
		{Kind: eventlog.ItemAssigned, Payload: json.RawMessage(`{"item_id":101,"order_id":55}`)},
	})
	require.NoError(t, err)

	entries, err := log.Load(ctx, stream)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, eventlog.OrderStarted, entries[0].Kind)
	assert.Equal(t, 1, entries[0].Version)
	assert.Equal(t, 2, entries[1].Version)
	assert.Equal(t, stream, entries[1].Stream)

	version, err := log.Version(ctx, stream)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestAppendVersionConflict(t *testing.T) {
	log := eventlog.NewMemoryLog()
	ctx := context.Background()
	stream := eventlog.ItemStream(101)

	require.NoError(t, log.Append(ctx, stream, 0, []eventlog.Entry{{Kind: eventlog.DonationAccepted}}))

	err := log.Append(ctx, stream, 0, []eventlog.Entry{{Kind: eventlog.ItemAssigned}})
	assert.ErrorIs(t, err, eventlog.ErrVersionConflict)

	// Nothing was written by the losing append.
	version, err := log.Version(ctx, stream)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestAppendAnyVersionSkipsCheck(t *testing.T) {
	log := eventlog.NewMemoryLog()
	ctx := context.Background()
	stream := eventlog.UserStream("dora")

	require.NoError(t, log.Append(ctx, stream, eventlog.AnyVersion, []eventlog.Entry{{Kind: eventlog.UserRegistered}}))
	require.NoError(t, log.Append(ctx, stream, eventlog.AnyVersion, []eventlog.Entry{{Kind: eventlog.UserRegistered}}))

	version, err := log.Version(ctx, stream)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestStreamsAreIsolated(t *testing.T) {
	log := eventlog.NewMemoryLog()
	ctx := context.Background()

	require.NoError(t, eventlog.Record(ctx, log, eventlog.ItemStream(1), eventlog.DonationAccepted, map[string]int{"item_id": 1}))
	require.NoError(t, eventlog.Record(ctx, log, eventlog.ItemStream(2), eventlog.DonationAccepted, map[string]int{"item_id": 2}))

	entries, err := log.Load(ctx, eventlog.ItemStream(1))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
