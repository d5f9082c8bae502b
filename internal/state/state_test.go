package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"skillmatch/internal/models"
	"skillmatch/internal/persistence"
	"skillmatch/internal/seed"
	"skillmatch/internal/storage/storagetest"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newService(t *testing.T) (*persistence.Service, *storagetest.Medium) {
	t.Helper()
	medium := storagetest.New()
	return persistence.New(medium, zap.NewNop(), persistence.WithClock(clock)), medium
}

func TestPersistent_NotLoadedBeforeMount(t *testing.T) {
	svc, _ := newService(t)
	hook := NewSettings(svc, zap.NewNop())

	assert.False(t, hook.Loaded())
	assert.Equal(t, seed.Settings(""), hook.Value())
}

func TestPersistent_NoIdentityMakesNoStorageCalls(t *testing.T) {
	ctx := context.Background()
	svc, medium := newService(t)
	hook := NewBilling(svc, zap.NewNop())

	hook.Mount(ctx, Identity{})
	assert.True(t, hook.Loaded())
	assert.Equal(t, seed.Billing("", ""), hook.Value())

	hook.Set(ctx, func(b models.BillingData) models.BillingData {
		b.CurrentPlan = models.PlanStarter
		return b
	})

	assert.Equal(t, models.PlanStarter, hook.Value().CurrentPlan)
	assert.Empty(t, medium.Calls())
}

func TestPersistent_LoadsStoredValueOnce(t *testing.T) {
	ctx := context.Background()
	svc, medium := newService(t)

	stored := seed.Settings("u1")
	stored.General.Theme = "dark"
	require.NoError(t, svc.SaveSettings(ctx, &stored))
	medium.ResetCalls()

	hook := NewSettings(svc, zap.NewNop())
	id := Identity{UserID: "u1", Role: models.RoleCandidate}

	hook.Mount(ctx, id)
	hook.Mount(ctx, id)

	assert.True(t, hook.Loaded())
	assert.Equal(t, "dark", hook.Value().General.Theme)
	assert.Equal(t, []storagetest.Call{
		{Op: storagetest.OpGet, Key: "skillmatch_settings_u1"},
	}, medium.Calls())
}

func TestPersistent_DefaultFromIdentity(t *testing.T) {
	svc, _ := newService(t)
	hook := NewBilling(svc, zap.NewNop())

	hook.Mount(context.Background(), Identity{UserID: "u1", Role: models.RoleRecruiter, Company: "Acme"})

	got := hook.Value()
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Acme", got.VAT.CompanyName)
	assert.Equal(t, models.PlanFree, got.CurrentPlan)
}

func TestPersistent_ReadFailureKeepsDefault(t *testing.T) {
	svc, medium := newService(t)
	medium.Fail(storagetest.OpGet, storagetest.AnyKey)

	hook := NewSearchFilters(svc, zap.NewNop())
	hook.Mount(context.Background(), Identity{UserID: "u1"})

	assert.True(t, hook.Loaded())
	assert.Equal(t, seed.SearchFilters("u1"), hook.Value())
}

func TestPersistent_WriteThroughMergesOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	hook := NewSearchFilters(svc, zap.NewNop(), WithClock(clock))
	hook.Mount(ctx, Identity{UserID: "u1"})

	hook.Set(ctx, func(f models.SearchFilters) models.SearchFilters {
		f.UserID = "someone-else"
		f.Location = "Berlin"
		return f
	})

	stored := svc.GetSearchFilters(ctx, "u1")
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "Berlin", stored.Location)
	assert.Equal(t, fixedNow, stored.UpdatedAt)

	// memory keeps exactly what the update produced
	assert.Equal(t, "someone-else", hook.Value().UserID)
	assert.True(t, hook.Value().UpdatedAt.IsZero())
}

func TestPersistent_FailingSaveUpdatesMemory(t *testing.T) {
	ctx := context.Background()
	svc, medium := newService(t)
	core, logs := observer.New(zapcore.ErrorLevel)

	hook := NewBilling(svc, zap.New(core))
	hook.Mount(ctx, Identity{UserID: "u1"})
	medium.Fail(storagetest.OpSet, storagetest.AnyKey)

	assert.NotPanics(t, func() {
		hook.Set(ctx, func(b models.BillingData) models.BillingData {
			b.CurrentPlan = models.PlanEnterprise
			return b
		})
	})

	assert.Equal(t, models.PlanEnterprise, hook.Value().CurrentPlan)
	assert.Nil(t, svc.GetBillingData(ctx, "u1"))
	assert.Equal(t, 1, logs.FilterMessage("failed to save slot").Len())
}

func TestPersistent_IdentityChangeReloads(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, id := range []string{"u1", "u2"} {
		f := seed.SearchFilters(id)
		f.Location = "city-of-" + id
		require.NoError(t, svc.SaveSearchFilters(ctx, &f))
	}

	hook := NewSearchFilters(svc, zap.NewNop())

	hook.Mount(ctx, Identity{UserID: "u1"})
	assert.Equal(t, "city-of-u1", hook.Value().Location)
	hook.SetValue(ctx, models.SearchFilters{Location: "Lisbon"})

	hook.Mount(ctx, Identity{UserID: "u2"})
	assert.Equal(t, "city-of-u2", hook.Value().Location)

	hook.Mount(ctx, Identity{UserID: "u1"})
	assert.Equal(t, "Lisbon", hook.Value().Location)

	hook.Mount(ctx, Identity{})
	assert.Equal(t, seed.SearchFilters(""), hook.Value())
}

func TestPersistent_State(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	hook := NewSettings(svc, zap.NewNop())
	hook.Mount(ctx, Identity{UserID: "u1"})

	value, set, loaded := hook.State()
	assert.True(t, loaded)
	assert.Equal(t, "light", value.General.Theme)

	value.General.Theme = "dark"
	set(ctx, Replace(value))

	stored := svc.GetSettings(ctx, "u1")
	require.NotNil(t, stored)
	assert.Equal(t, "dark", stored.General.Theme)
}

func TestPersistent_SavePanicIsContained(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.ErrorLevel)

	hook := New(Binding[int]{
		Slot:    "counter",
		Default: func(Identity) int { return 0 },
		Load: func(context.Context, string) (*int, error) {
			return nil, nil
		},
		Save: func(context.Context, string, int, time.Time) error {
			panic("boom")
		},
	}, zap.New(core))

	hook.Mount(ctx, Identity{UserID: "u1"})
	assert.NotPanics(t, func() {
		hook.Set(ctx, func(n int) int { return n + 1 })
	})

	assert.Equal(t, 1, hook.Value())
	assert.Equal(t, 1, logs.FilterMessage("panic while saving slot").Len())
}
