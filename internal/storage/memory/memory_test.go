package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillmatch/internal/storage"
)

func TestMedium_SetGetRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := New()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "a", `{"x":1}`))
	value, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, value)

	require.NoError(t, m.Remove(ctx, "a"))
	require.NoError(t, m.Remove(ctx, "a"))
	_, ok, err = m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMedium_KeysAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := New()

	require.NoError(t, m.Set(ctx, "skillmatch_jobs_1", "{}"))
	require.NoError(t, m.Set(ctx, "skillmatch_jobs_2", "{}"))
	require.NoError(t, m.Set(ctx, "skillmatch_recruiter_jobs_r1", "[]"))

	keys, err := m.Keys(ctx, "skillmatch_jobs_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"skillmatch_jobs_1", "skillmatch_jobs_2"}, keys)

	require.NoError(t, m.Clear(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestMedium_Closed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := New()
	require.NoError(t, m.Close())

	_, _, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, "a", "b"), storage.ErrClosed)
	assert.ErrorIs(t, m.Remove(ctx, "a"), storage.ErrClosed)
	assert.ErrorIs(t, m.Clear(ctx), storage.ErrClosed)
	_, err = m.Keys(ctx, "")
	assert.ErrorIs(t, err, storage.ErrClosed)
}
