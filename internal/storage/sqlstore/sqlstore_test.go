package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSQLite(t *testing.T) *Medium {
	t.Helper()

	m, err := New(DriverSQLite, filepath.Join(t.TempDir(), "kv.db"), "skillmatch", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	return m
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "dsn", "skillmatch", zap.NewNop())
	assert.Error(t, err)
}

func TestMedium_SQLite(t *testing.T) {
	exerciseMedium(t, newSQLite(t))
}

func TestMedium_Postgres(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	m, err := New(DriverPostgres, dsn, "skillmatch", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.Clear(context.Background())
		_ = m.Close()
	})

	exerciseMedium(t, m)
}

func exerciseMedium(t *testing.T, m *Medium) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, m.Clear(ctx))

	_, ok, err := m.Get(ctx, "skillmatch_users_u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "skillmatch_users_u1", `{"id":"u1"}`))
	require.NoError(t, m.Set(ctx, "skillmatch_users_u1", `{"id":"u1","role":"recruiter"}`))

	value, ok, err := m.Get(ctx, "skillmatch_users_u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1","role":"recruiter"}`, value)

	require.NoError(t, m.Set(ctx, "skillmatch_jobs_j1", "{}"))
	require.NoError(t, m.Set(ctx, "skillmatch_jobs_j2", "{}"))
	require.NoError(t, m.Set(ctx, "skillmatch_recruiter_jobs_u1", `["j1","j2"]`))
	require.NoError(t, m.Set(ctx, "skillmatchXjobsXj3", "{}"))
	require.NoError(t, m.Set(ctx, "other_users_u1", "{}"))

	keys, err := m.Keys(ctx, "skillmatch_jobs_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"skillmatch_jobs_j1", "skillmatch_jobs_j2"}, keys)

	require.NoError(t, m.Remove(ctx, "skillmatch_jobs_j2"))
	require.NoError(t, m.Remove(ctx, "skillmatch_jobs_missing"))

	keys, err = m.Keys(ctx, "skillmatch_jobs_")
	require.NoError(t, err)
	assert.Equal(t, []string{"skillmatch_jobs_j1"}, keys)

	require.NoError(t, m.Clear(ctx))

	keys, err = m.Keys(ctx, "skillmatch_")
	require.NoError(t, err)
	assert.Empty(t, keys)

	// keys outside the namespace survive a clear
	_, ok, err = m.Get(ctx, "other_users_u1")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, m.Remove(ctx, "other_users_u1"))
	require.NoError(t, m.Remove(ctx, "skillmatchXjobsXj3"))
}
