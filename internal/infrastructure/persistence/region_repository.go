package persistence

import (
	"context"
	"errors"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRegionRepository implements catalog.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByID finds a region by its deterministic ID
func (r *GormRegionRepository) FindByID(ctx context.Context, id string) (*catalog.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrRegionNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all regions ordered by ID
func (r *GormRegionRepository) FindAll(ctx context.Context) ([]catalog.Region, error) {
	var regionModels []models.RegionModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&regionModels).Error; err != nil {
		return nil, err
	}

	regions := make([]catalog.Region, len(regionModels))
	for i, model := range regionModels {
		regions[i] = *model.ToDomain()
	}
	return regions, nil
}

// ExistsByID checks whether a region with the given ID exists
func (r *GormRegionRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RegionModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *catalog.Region) error {
	model := models.RegionModelFromDomain(region)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Ensure GormRegionRepository implements catalog.RegionRepository
var _ catalog.RegionRepository = (*GormRegionRepository)(nil)
