package state

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"skillmatch/internal/models"
	"skillmatch/internal/storage/storagetest"
)

const tagsKey = "skillmatch_tags"

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSimple_LoadsAfterDelay(t *testing.T) {
	medium := storagetest.New()
	require.NoError(t, medium.Medium.Set(context.Background(), tagsKey, `[{"id":"t1","name":"stored","color":"#000","count":2}]`))

	delay := 30 * time.Millisecond
	s := NewSimple(medium, tagsKey, []models.Tag{{ID: "seed"}}, zap.NewNop(), WithMinLoadDelay(delay))
	assert.False(t, s.Loaded())

	began := time.Now()
	s.Start(context.Background())
	s.Start(context.Background())
	require.NoError(t, s.Wait(waitCtx(t)))

	assert.GreaterOrEqual(t, time.Since(began), delay)
	assert.True(t, s.Loaded())
	assert.Equal(t, []models.Tag{{ID: "t1", Name: "stored", Color: "#000", Count: 2}}, s.Value())
	assert.Len(t, medium.CallsFor(storagetest.OpGet), 1)
}

func TestSimple_KeepsInitialWhenNothingStored(t *testing.T) {
	medium := storagetest.New()
	require.NoError(t, medium.Medium.Set(context.Background(), tagsKey, "null"))

	s := NewSimple(medium, tagsKey, []models.Tag{{ID: "seed"}}, zap.NewNop(), WithMinLoadDelay(0))
	s.Start(context.Background())
	require.NoError(t, s.Wait(waitCtx(t)))

	assert.Equal(t, []models.Tag{{ID: "seed"}}, s.Value())
}

func TestSimple_SetWritesWholeValueAfterLoad(t *testing.T) {
	ctx := context.Background()
	medium := storagetest.New()
	s := NewSimple(medium, tagsKey, []models.Tag{}, zap.NewNop(), WithMinLoadDelay(time.Hour))

	s.Set(ctx, func(tags []models.Tag) []models.Tag {
		return append(tags, models.Tag{ID: "early"})
	})
	assert.Empty(t, medium.CallsFor(storagetest.OpSet))

	fast := NewSimple(medium, tagsKey, []models.Tag{}, zap.NewNop(), WithMinLoadDelay(0))
	fast.Start(ctx)
	require.NoError(t, fast.Wait(waitCtx(t)))

	fast.Set(ctx, func(tags []models.Tag) []models.Tag {
		return append(tags, models.Tag{ID: "t1", Name: "go"})
	})

	text, ok, err := medium.Medium.Get(ctx, tagsKey)
	require.NoError(t, err)
	require.True(t, ok)

	var stored []models.Tag
	require.NoError(t, json.Unmarshal([]byte(text), &stored))
	assert.Equal(t, []models.Tag{{ID: "t1", Name: "go"}}, stored)
}

func TestSimple_CancelledBeforeReady(t *testing.T) {
	medium := storagetest.New()
	s := NewSimple(medium, tagsKey, []models.Tag{}, zap.NewNop(), WithMinLoadDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	waitFor, stop := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer stop()

	assert.ErrorIs(t, s.Wait(waitFor), context.DeadlineExceeded)
	assert.False(t, s.Loaded())
}

func TestSimple_WriteFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	medium := storagetest.New()
	core, logs := observer.New(zapcore.ErrorLevel)

	s := NewSimple(medium, tagsKey, []models.Tag{}, zap.New(core), WithMinLoadDelay(0))
	s.Start(ctx)
	require.NoError(t, s.Wait(waitCtx(t)))

	medium.Fail(storagetest.OpSet, tagsKey)
	assert.NotPanics(t, func() {
		s.SetValue(ctx, []models.Tag{{ID: "t1"}})
	})

	assert.Equal(t, []models.Tag{{ID: "t1"}}, s.Value())
	assert.Equal(t, 1, logs.FilterMessage("failed to save slot").Len())
}

func TestWorkspace(t *testing.T) {
	ctx := context.Background()
	medium := storagetest.New()
	ws := NewWorkspace(medium, "skillmatch", rand.New(rand.NewSource(7)), zap.NewNop(), WithMinLoadDelay(0))

	assert.Equal(t, []string{
		SlotActivities, SlotAnalytics, SlotCandidates,
		SlotInterviews, SlotNotifications, SlotTags,
	}, ws.Names())

	_, ok := ws.Slot("payroll")
	assert.False(t, ok)

	ws.Start(ctx)
	slot, ok := ws.Slot(SlotNotifications)
	require.True(t, ok)
	require.NoError(t, slot.Wait(waitCtx(t)))

	require.NoError(t, slot.ReplaceJSON(ctx, []byte(`[{"id":"n1","title":"hello"}]`)))
	assert.Error(t, slot.ReplaceJSON(ctx, []byte(`{"id":`)))

	notes, ok := slot.Snapshot().([]models.Notification)
	require.True(t, ok)
	require.Len(t, notes, 1)
	assert.Equal(t, "hello", notes[0].Title)

	_, stored, err := medium.Medium.Get(ctx, WorkspaceKey("skillmatch", SlotNotifications))
	require.NoError(t, err)
	assert.True(t, stored)
}
