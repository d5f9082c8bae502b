package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/models"
	"skillmatch/internal/persistence"
	"skillmatch/internal/seed"
)

func BillingSlot(svc *persistence.Service) Binding[models.BillingData] {
	return Binding[models.BillingData]{
		Slot: persistence.EntityBilling,
		Default: func(id Identity) models.BillingData {
			return seed.Billing(id.UserID, id.Company)
		},
		Load: func(ctx context.Context, userID string) (*models.BillingData, error) {
			return svc.GetBillingData(ctx, userID), nil
		},
		Save: func(ctx context.Context, userID string, v models.BillingData, at time.Time) error {
			v.UserID = userID
			v.UpdatedAt = at
			return svc.SaveBillingData(ctx, &v)
		},
	}
}

func SearchFiltersSlot(svc *persistence.Service) Binding[models.SearchFilters] {
	return Binding[models.SearchFilters]{
		Slot: persistence.EntityFilters,
		Default: func(id Identity) models.SearchFilters {
			return seed.SearchFilters(id.UserID)
		},
		Load: func(ctx context.Context, userID string) (*models.SearchFilters, error) {
			return svc.GetSearchFilters(ctx, userID), nil
		},
		Save: func(ctx context.Context, userID string, v models.SearchFilters, at time.Time) error {
			v.UserID = userID
			v.UpdatedAt = at
			return svc.SaveSearchFilters(ctx, &v)
		},
	}
}

func SettingsSlot(svc *persistence.Service) Binding[models.SettingsData] {
	return Binding[models.SettingsData]{
		Slot: persistence.EntitySettings,
		Default: func(id Identity) models.SettingsData {
			return seed.Settings(id.UserID)
		},
		Load: func(ctx context.Context, userID string) (*models.SettingsData, error) {
			return svc.GetSettings(ctx, userID), nil
		},
		Save: func(ctx context.Context, userID string, v models.SettingsData, at time.Time) error {
			v.UserID = userID
			v.UpdatedAt = at
			return svc.SaveSettings(ctx, &v)
		},
	}
}

func NewBilling(svc *persistence.Service, logger *zap.Logger, opts ...Option) *Persistent[models.BillingData] {
	return New(BillingSlot(svc), logger, opts...)
}

func NewSearchFilters(svc *persistence.Service, logger *zap.Logger, opts ...Option) *Persistent[models.SearchFilters] {
	return New(SearchFiltersSlot(svc), logger, opts...)
}

func NewSettings(svc *persistence.Service, logger *zap.Logger, opts ...Option) *Persistent[models.SettingsData] {
	return New(SettingsSlot(svc), logger, opts...)
}
