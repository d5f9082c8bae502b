package state

import (
	"context"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"skillmatch/internal/seed"
	"skillmatch/internal/storage"
)

// Workspace slots
const (
	SlotActivities    = "activities"
	SlotAnalytics     = "analytics"
	SlotCandidates    = "candidates"
	SlotInterviews    = "interviews"
	SlotNotifications = "notifications"
	SlotTags          = "tags"
)

// WorkspaceSlot is the type-erased view of a Simple hook
type WorkspaceSlot interface {
	Start(ctx context.Context)
	Wait(ctx context.Context) error
	Loaded() bool
	Snapshot() any
	ReplaceJSON(ctx context.Context, data []byte) error
}

// Workspace holds the shared dashboard slots, seeded with demo data
type Workspace struct {
	slots map[string]WorkspaceSlot
}

func WorkspaceKey(namespace, slot string) string {
	return namespace + "_" + slot
}

func NewWorkspace(medium storage.Medium, namespace string, rng *rand.Rand, logger *zap.Logger, opts ...Option) *Workspace {
	key := func(slot string) string {
		return WorkspaceKey(namespace, slot)
	}

	return &Workspace{
		slots: map[string]WorkspaceSlot{
			SlotActivities:    NewSimple(medium, key(SlotActivities), seed.Activities(), logger, opts...),
			SlotAnalytics:     NewSimple(medium, key(SlotAnalytics), seed.Analytics(rng), logger, opts...),
			SlotCandidates:    NewSimple(medium, key(SlotCandidates), seed.Candidates(), logger, opts...),
			SlotInterviews:    NewSimple(medium, key(SlotInterviews), seed.Interviews(), logger, opts...),
			SlotNotifications: NewSimple(medium, key(SlotNotifications), seed.Notifications(), logger, opts...),
			SlotTags:          NewSimple(medium, key(SlotTags), seed.Tags(), logger, opts...),
		},
	}
}

func (w *Workspace) Start(ctx context.Context) {
	for _, slot := range w.slots {
		slot.Start(ctx)
	}
}

func (w *Workspace) Slot(name string) (WorkspaceSlot, bool) {
	slot, ok := w.slots[name]
	return slot, ok
}

func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.slots))
	for name := range w.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
