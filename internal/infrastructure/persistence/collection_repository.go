package persistence

import (
	"context"
	"errors"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollectionRepository implements catalog.CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByHandle finds a collection by its handle
func (r *GormCollectionRepository) FindByHandle(ctx context.Context, handle string) (*catalog.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).First(&model, "handle = ?", handle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCollectionNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all collections ordered by handle
func (r *GormCollectionRepository) FindAll(ctx context.Context) ([]catalog.Collection, error) {
	var collectionModels []models.CollectionModel
	if err := r.db.WithContext(ctx).Order("handle ASC").Find(&collectionModels).Error; err != nil {
		return nil, err
	}

	collections := make([]catalog.Collection, len(collectionModels))
	for i, model := range collectionModels {
		collections[i] = *model.ToDomain()
	}
	return collections, nil
}

// Save creates or updates a collection, upserting by handle
func (r *GormCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	model := models.CollectionModelFromDomain(collection)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "handle"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Count returns the number of collections
func (r *GormCollectionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CollectionModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCollectionRepository implements catalog.CollectionRepository
var _ catalog.CollectionRepository = (*GormCollectionRepository)(nil)
