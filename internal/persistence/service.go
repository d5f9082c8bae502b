// Package persistence is the typed, namespaced record store behind every
// persistent state slot.
//
// Error policy: Save* methods return write failures so callers can report
// them. Get* methods never fail; an absent key, unparseable text or a failed
// read all come back as nil.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/models"
	"skillmatch/internal/storage"
)

type Service struct {
	medium    storage.Medium
	namespace string
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithNamespace(namespace string) Option {
	return func(s *Service) {
		s.namespace = namespace
	}
}

// WithClock overrides the clock used to stamp BillingData.UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(medium storage.Medium, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		medium:    medium,
		namespace: DefaultNamespace,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Namespace() string {
	return s.namespace
}

// Medium exposes the underlying store for the unscoped workspace slots
func (s *Service) Medium() storage.Medium {
	return s.medium
}

// User profile

func (s *Service) SaveUserProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := s.write(ctx, s.key(EntityUsers, profile.ID), profile); err != nil {
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID string) *models.UserProfile {
	return read[models.UserProfile](ctx, s, s.key(EntityUsers, userID))
}

// IsUserDataExists reports whether a parseable profile is stored for userID
func (s *Service) IsUserDataExists(ctx context.Context, userID string) bool {
	return s.GetUserProfile(ctx, userID) != nil
}

// Billing

// SaveBillingData refreshes data.UpdatedAt before writing
func (s *Service) SaveBillingData(ctx context.Context, data *models.BillingData) error {
	data.UpdatedAt = s.now().UTC()

	if err := s.write(ctx, s.key(EntityBilling, data.UserID), data); err != nil {
		return fmt.Errorf("save billing data: %w", err)
	}
	return nil
}

func (s *Service) GetBillingData(ctx context.Context, userID string) *models.BillingData {
	return read[models.BillingData](ctx, s, s.key(EntityBilling, userID))
}

// Search filters

func (s *Service) SaveSearchFilters(ctx context.Context, filters *models.SearchFilters) error {
	if err := s.write(ctx, s.key(EntityFilters, filters.UserID), filters); err != nil {
		return fmt.Errorf("save search filters: %w", err)
	}
	return nil
}

func (s *Service) GetSearchFilters(ctx context.Context, userID string) *models.SearchFilters {
	return read[models.SearchFilters](ctx, s, s.key(EntityFilters, userID))
}

// Settings

func (s *Service) SaveSettings(ctx context.Context, settings *models.SettingsData) error {
	if err := s.write(ctx, s.key(EntitySettings, settings.UserID), settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *Service) GetSettings(ctx context.Context, userID string) *models.SettingsData {
	return read[models.SettingsData](ctx, s, s.key(EntitySettings, userID))
}

// Jobs

// SaveJob writes the job and appends its id to the recruiter index. The
// index only grows; it is not pruned when job records disappear.
func (s *Service) SaveJob(ctx context.Context, job *models.Job) error {
	if err := s.write(ctx, s.key(EntityJobs, job.ID), job); err != nil {
		return fmt.Errorf("save job: %w", err)
	}

	indexKey := s.key(EntityRecruiterJobs, job.RecruiterID)
	ids, err := s.readIndex(ctx, indexKey)
	if err != nil {
		return fmt.Errorf("save job: read recruiter index: %w", err)
	}

	if slices.Contains(ids, job.ID) {
		return nil
	}

	if err := s.write(ctx, indexKey, append(ids, job.ID)); err != nil {
		return fmt.Errorf("save job: write recruiter index: %w", err)
	}

	return nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) *models.Job {
	return read[models.Job](ctx, s, s.key(EntityJobs, jobID))
}

// GetJobsByRecruiter resolves the recruiter index in index order, skipping
// ids whose record is gone.
func (s *Service) GetJobsByRecruiter(ctx context.Context, recruiterID string) []models.Job {
	ids, err := s.readIndex(ctx, s.key(EntityRecruiterJobs, recruiterID))
	if err != nil {
		s.logger.Warn("failed to read recruiter index",
			zap.String("recruiter_id", recruiterID),
			zap.Error(err),
		)
		return []models.Job{}
	}

	jobs := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		if job := s.GetJob(ctx, id); job != nil {
			jobs = append(jobs, *job)
		}
	}

	return jobs
}

// ListJobs returns every stored job, newest first
func (s *Service) ListJobs(ctx context.Context) []models.Job {
	jobs := scan[models.Job](ctx, s, EntityJobs)

	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID < jobs[j].ID
	})

	return jobs
}

// Applications

func (s *Service) SaveApplication(ctx context.Context, app *models.Application) error {
	if err := s.write(ctx, s.key(EntityApplications, app.ID), app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}

func (s *Service) GetApplication(ctx context.Context, applicationID string) *models.Application {
	return read[models.Application](ctx, s, s.key(EntityApplications, applicationID))
}

// GetApplicationsByApplicant returns the applicant's applications, newest first
func (s *Service) GetApplicationsByApplicant(ctx context.Context, applicantID string) []models.Application {
	return s.filterApplications(ctx, func(app models.Application) bool {
		return app.ApplicantID == applicantID
	})
}

// GetApplicationsForJobs returns applications submitted to any of jobIDs
func (s *Service) GetApplicationsForJobs(ctx context.Context, jobIDs []string) []models.Application {
	if len(jobIDs) == 0 {
		return []models.Application{}
	}

	wanted := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = struct{}{}
	}

	return s.filterApplications(ctx, func(app models.Application) bool {
		_, ok := wanted[app.JobID]
		return ok
	})
}

func (s *Service) filterApplications(ctx context.Context, keep func(models.Application) bool) []models.Application {
	all := scan[models.Application](ctx, s, EntityApplications)

	apps := make([]models.Application, 0, len(all))
	for _, app := range all {
		if keep(app) {
			apps = append(apps, app)
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ID < apps[j].ID
	})

	return apps
}

// Bulk clear

// ClearUserData removes the profile, billing, settings and recruiter index of
// userID together with every job listed in that index. Each removal is tried
// independently; failures are logged and never returned.
func (s *Service) ClearUserData(ctx context.Context, userID string) {
	indexKey := s.key(EntityRecruiterJobs, userID)

	ids, err := s.readIndex(ctx, indexKey)
	if err != nil {
		s.logger.Warn("failed to read recruiter index for clear",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	keys := make([]string, 0, len(ids)+4)
	for _, id := range ids {
		keys = append(keys, s.key(EntityJobs, id))
	}
	keys = append(keys,
		s.key(EntityUsers, userID),
		s.key(EntityBilling, userID),
		s.key(EntitySettings, userID),
		indexKey,
	)

	failed := 0
	for _, key := range keys {
		if err := s.medium.Remove(ctx, key); err != nil {
			failed++
			s.logger.Warn("failed to remove key",
				zap.String("user_id", userID),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("user data cleared",
		zap.String("user_id", userID),
		zap.Int("keys", len(keys)),
		zap.Int("failed", failed),
	)
}

// helpers

func (s *Service) write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return s.medium.Set(ctx, key, string(data))
}

// readIndex returns an empty list for an absent or unparseable index. Only a
// failed read is reported.
func (s *Service) readIndex(ctx context.Context, key string) ([]string, error) {
	text, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		s.logger.Warn("discarding unparseable recruiter index",
			zap.String("key", key),
			zap.Error(err),
		)
		return []string{}, nil
	}

	return ids, nil
}

func read[T any](ctx context.Context, s *Service, key string) *T {
	text, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed, treating as not found",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return nil
	}

	// a stored "null" decodes to a nil pointer and reads as not found
	var value *T
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		s.logger.Warn("unparseable record, treating as not found",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}

	return value
}

func scan[T any](ctx context.Context, s *Service, entity string) []T {
	keys, err := s.medium.Keys(ctx, s.prefix(entity))
	if err != nil {
		s.logger.Warn("failed to list keys",
			zap.String("entity", entity),
			zap.Error(err),
		)
		return []T{}
	}

	values := make([]T, 0, len(keys))
	for _, key := range keys {
		if value := read[T](ctx, s, key); value != nil {
			values = append(values, *value)
		}
	}

	return values
}
