package session_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reusehub/internal/session"
)

func TestMemoryStorePointerLifecycle(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	sessionID := uuid.New()

	_, ok, err := store.OpenOrder(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetOpenOrder(ctx, sessionID, 55))

	orderID, ok, err := store.OpenOrder(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(55), orderID)

	// Starting a second order replaces the pointer; the first order itself
	// is untouched and stays addressable by id.
	require.NoError(t, store.SetOpenOrder(ctx, sessionID, 56))
	orderID, ok, err = store.OpenOrder(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(56), orderID)

	require.NoError(t, store.ClearOpenOrder(ctx, sessionID))
	_, ok, err = store.OpenOrder(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, store.SetOpenOrder(ctx, first, 1))

	_, ok, err := store.OpenOrder(ctx, second)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	sc := session.Context{SessionID: uuid.New(), Username: "sam", Staff: true}
	ctx := session.NewContext(context.Background(), sc)

	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sc, got)

	_, ok = session.FromContext(context.Background())
	assert.False(t, ok)
}
