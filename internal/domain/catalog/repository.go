package catalog

import "context"

// RegionRepository persists regions.
type RegionRepository interface {
	FindByID(ctx context.Context, id string) (*Region, error)
	FindAll(ctx context.Context) ([]Region, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, region *Region) error
}

// CollectionRepository persists collections. Save upserts by handle.
type CollectionRepository interface {
	FindByHandle(ctx context.Context, handle string) (*Collection, error)
	FindAll(ctx context.Context) ([]Collection, error)
	Save(ctx context.Context, collection *Collection) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository persists products. Save upserts by handle.
type ProductRepository interface {
	FindByHandle(ctx context.Context, handle string) (*Product, error)
	FindByPlanID(ctx context.Context, planID string) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Count(ctx context.Context) (int64, error)
}

// CurrencyRepository persists the seeded currency set.
type CurrencyRepository interface {
	FindByCode(ctx context.Context, code string) (*Currency, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, currency *Currency) error
}
