package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"skillmatch/internal/models"
	"skillmatch/internal/persistence"
)

// ListBinding ties an owner-scoped list to its storage. Ready reports whether
// id carries enough to load.
type ListBinding[T any] struct {
	Name  string
	Ready func(id Identity) bool
	Load  func(ctx context.Context, id Identity) ([]T, error)
	Save  func(ctx context.Context, item T) error
	ID    func(item T) string
}

// OwnerList holds the records visible to one identity. Items are saved one
// at a time; removal only affects memory.
type OwnerList[T any] struct {
	binding ListBinding[T]
	logger  *zap.Logger

	mu          sync.Mutex
	identity    Identity
	initialized string
	items       []T
	loaded      bool
}

func NewOwnerList[T any](binding ListBinding[T], logger *zap.Logger) *OwnerList[T] {
	return &OwnerList[T]{
		binding: binding,
		logger:  logger.With(zap.String("list", binding.Name)),
		items:   []T{},
	}
}

func listKey(id Identity) string {
	return id.UserID + "\x00" + id.Role
}

// Mount loads the list for id once. A role change counts as a new identity.
func (l *OwnerList[T]) Mount(ctx context.Context, id Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id.IsZero() {
		if l.identity.IsZero() && l.loaded {
			return
		}
		l.identity = id
		l.initialized = ""
		l.items = []T{}
		l.loaded = true
		return
	}

	key := listKey(id)
	if l.initialized == key {
		l.identity = id
		return
	}

	l.identity = id
	l.initialized = ""
	l.items = []T{}
	l.loaded = false

	if !l.binding.Ready(id) {
		return
	}

	items, err := l.binding.Load(ctx, id)
	switch {
	case err != nil:
		l.logger.Warn("failed to load list",
			zap.String("user_id", id.UserID),
			zap.Error(err),
		)
	case items != nil:
		l.items = items
	}

	l.initialized = key
	l.loaded = true
}

func (l *OwnerList[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *OwnerList[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Set replaces the in-memory list. Nothing is written.
func (l *OwnerList[T]) Set(_ context.Context, update Update[[]T]) {
	if update == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := update(slices.Clone(l.items))
	if next == nil {
		next = []T{}
	}
	l.items = next
}

func (l *OwnerList[T]) State() ([]T, Setter[[]T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items), l.Set, l.loaded
}

// SaveItem replaces the item with the same id or prepends it, then writes it
// through. A failed write is returned; memory keeps the new item.
func (l *OwnerList[T]) SaveItem(ctx context.Context, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.binding.ID(item)
	idx := slices.IndexFunc(l.items, func(v T) bool {
		return l.binding.ID(v) == id
	})
	if idx >= 0 {
		l.items[idx] = item
	} else {
		l.items = append([]T{item}, l.items...)
	}

	if err := l.binding.Save(ctx, item); err != nil {
		l.logger.Error("failed to save list item",
			zap.String("item_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("save %s item: %w", l.binding.Name, err)
	}

	return nil
}

// DeleteItem drops the item from memory only; the stored record stays.
func (l *OwnerList[T]) DeleteItem(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(v T) bool {
		return l.binding.ID(v) == id
	})

	return len(l.items) != before
}

// JobsList shows recruiters their own postings and everyone else the active
// ones. It waits for a role before loading.
func JobsList(svc *persistence.Service, logger *zap.Logger) ListBinding[models.JobPosting] {
	return ListBinding[models.JobPosting]{
		Name: persistence.EntityJobs,
		Ready: func(id Identity) bool {
			return id.Role != ""
		},
		Load: func(ctx context.Context, id Identity) ([]models.JobPosting, error) {
			var jobs []models.Job
			if id.Role == models.RoleRecruiter {
				jobs = svc.GetJobsByRecruiter(ctx, id.UserID)
			} else {
				for _, job := range svc.ListJobs(ctx) {
					if job.Status == models.JobStatusActive {
						jobs = append(jobs, job)
					}
				}
			}

			postings := make([]models.JobPosting, 0, len(jobs))
			for _, job := range jobs {
				posting, err := job.Posting()
				if err != nil {
					logger.Warn("failed to decode job fields",
						zap.String("job_id", job.ID),
						zap.Error(err),
					)
				}
				postings = append(postings, posting)
			}

			return postings, nil
		},
		Save: func(ctx context.Context, posting models.JobPosting) error {
			job, err := posting.Record()
			if err != nil {
				return fmt.Errorf("encode job: %w", err)
			}
			return svc.SaveJob(ctx, &job)
		},
		ID: func(posting models.JobPosting) string {
			return posting.ID
		},
	}
}

// ApplicationsList shows applicants what they applied to and recruiters the
// applications for their jobs.
func ApplicationsList(svc *persistence.Service, logger *zap.Logger) ListBinding[models.TrackedApplication] {
	return ListBinding[models.TrackedApplication]{
		Name: persistence.EntityApplications,
		Ready: func(id Identity) bool {
			return true
		},
		Load: func(ctx context.Context, id Identity) ([]models.TrackedApplication, error) {
			var apps []models.Application
			if id.Role == models.RoleRecruiter {
				jobs := svc.GetJobsByRecruiter(ctx, id.UserID)
				jobIDs := make([]string, 0, len(jobs))
				for _, job := range jobs {
					jobIDs = append(jobIDs, job.ID)
				}
				apps = svc.GetApplicationsForJobs(ctx, jobIDs)
			} else {
				apps = svc.GetApplicationsByApplicant(ctx, id.UserID)
			}

			tracked := make([]models.TrackedApplication, 0, len(apps))
			for _, app := range apps {
				t, err := app.Tracked()
				if err != nil {
					logger.Warn("failed to decode application analysis",
						zap.String("application_id", app.ID),
						zap.Error(err),
					)
				}
				tracked = append(tracked, t)
			}

			return tracked, nil
		},
		Save: func(ctx context.Context, t models.TrackedApplication) error {
			app, err := t.Record()
			if err != nil {
				return fmt.Errorf("encode application: %w", err)
			}
			return svc.SaveApplication(ctx, &app)
		},
		ID: func(t models.TrackedApplication) string {
			return t.ID
		},
	}
}

func NewJobs(svc *persistence.Service, logger *zap.Logger) *OwnerList[models.JobPosting] {
	return NewOwnerList(JobsList(svc, logger), logger)
}

func NewApplications(svc *persistence.Service, logger *zap.Logger) *OwnerList[models.TrackedApplication] {
	return NewOwnerList(ApplicationsList(svc, logger), logger)
}
