package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"asset-registry-backend/internal/model"
)

var (
	// ErrLocationNotFound is returned when a location id does not resolve.
	ErrLocationNotFound = errors.New("location not found")
	// ErrAssetNotFound is returned when an asset id does not resolve.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrAssetDecommissioned is returned when a condition update targets an
	// asset that is no longer in service.
	ErrAssetDecommissioned = errors.New("asset is decommissioned")
	// ErrSurveyNotFound is returned when a survey id does not resolve.
	ErrSurveyNotFound = errors.New("survey not found")
)

// AssetDirectory exposes the canonical asset records the reconciliation
// workflow reads from and writes back to.
type AssetDirectory interface {
	GetLocations(ctx context.Context) ([]model.Location, error)
	// GetAssetsByLocation returns the active assets currently assigned to a
	// location, ordered by tag.
	GetAssetsByLocation(ctx context.Context, locationID int64) ([]model.Asset, error)
	// UpdateCondition sets the condition of a single active asset. It fails
	// with ErrAssetDecommissioned rather than touching an asset that has left
	// service.
	UpdateCondition(ctx context.Context, assetID int64, condition model.Condition) (model.Asset, error)
}

// InventoryStore persists inventory survey aggregates.
type InventoryStore interface {
	Create(ctx context.Context, survey *model.InventorySurvey) (int64, error)
	GetByID(ctx context.Context, id int64) (model.InventorySurvey, error)
	List(ctx context.Context) ([]model.InventorySurvey, error)
	// MarkReviewed flips the reviewed flag with a conditional write and
	// reports whether this call was the one that flipped it.
	MarkReviewed(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Store bundles both data-access contracts plus raw DB access for the few
// handlers that manage ancillary tables directly.
type Store interface {
	AssetDirectory
	InventoryStore
	DB() *gorm.DB
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetLocations(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := s.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *gormStore) GetAssetsByLocation(ctx context.Context, locationID int64) ([]model.Asset, error) {
	var location model.Location
	if err := s.db.WithContext(ctx).First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to resolve location %d: %w", locationID, err)
	}

	var assets []model.Asset
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND availability = ?", locationID, model.AvailabilityActive).
		Order("tag").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for location %d: %w", locationID, err)
	}
	return assets, nil
}

func (s *gormStore) UpdateCondition(ctx context.Context, assetID int64, condition model.Condition) (model.Asset, error) {
	// Conditional write: a decommissioned asset's condition must never be
	// resurrected through reconciliation.
	res := s.db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("id = ? AND availability = ?", assetID, model.AvailabilityActive).
		Update("condition", condition)
	if res.Error != nil {
		return model.Asset{}, fmt.Errorf("failed to update condition of asset %d: %w", assetID, res.Error)
	}

	if res.RowsAffected == 0 {
		var probe model.Asset
		err := s.db.WithContext(ctx).First(&probe, assetID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return model.Asset{}, ErrAssetNotFound
		case err != nil:
			return model.Asset{}, fmt.Errorf("failed to probe asset %d: %w", assetID, err)
		default:
			return model.Asset{}, ErrAssetDecommissioned
		}
	}

	var asset model.Asset
	if err := s.db.WithContext(ctx).First(&asset, assetID).Error; err != nil {
		return model.Asset{}, fmt.Errorf("failed to reload asset %d: %w", assetID, err)
	}
	return asset, nil
}

func (s *gormStore) Create(ctx context.Context, survey *model.InventorySurvey) (int64, error) {
	if err := s.db.WithContext(ctx).Create(survey).Error; err != nil {
		return 0, fmt.Errorf("failed to create survey: %w", err)
	}
	return survey.ID, nil
}

func (s *gormStore) GetByID(ctx context.Context, id int64) (model.InventorySurvey, error) {
	var survey model.InventorySurvey
	err := s.preloaded(ctx).First(&survey, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.InventorySurvey{}, ErrSurveyNotFound
	}
	if err != nil {
		return model.InventorySurvey{}, fmt.Errorf("failed to fetch survey %d: %w", id, err)
	}
	return survey, nil
}

func (s *gormStore) List(ctx context.Context) ([]model.InventorySurvey, error) {
	var surveys []model.InventorySurvey
	if err := s.preloaded(ctx).Order("id DESC").Find(&surveys).Error; err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, nil
}

func (s *gormStore) MarkReviewed(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.InventorySurvey{}).
		Where("id = ? AND reviewed = ?", id, false).
		Update("reviewed", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark survey %d reviewed: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *gormStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.InventorySurvey{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete survey %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (s *gormStore) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Location").
		Preload("Submitter")
}
