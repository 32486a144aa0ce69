package persistence

import (
	"context"
	"errors"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCurrencyRepository implements catalog.CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*catalog.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCurrencyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks whether a currency with the given code exists
func (r *GormCurrencyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CurrencyModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *catalog.Currency) error {
	model := models.CurrencyModelFromDomain(currency)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"symbol", "symbol_native", "name", "updated_at"}),
		}).
		Create(model).Error
}

// Ensure GormCurrencyRepository implements catalog.CurrencyRepository
var _ catalog.CurrencyRepository = (*GormCurrencyRepository)(nil)
