package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("catalog: product not found")
	ErrProductMissingHandle = errors.New("catalog: product handle is required")
	ErrProductMissingTitle  = errors.New("catalog: product title is required")
	ErrProductInvalidPrice  = errors.New("catalog: invalid product price")
)

// ProductStatus represents the publication status of a product.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

// Product is one purchasable eSIM plan offering in one region. A provider
// package whose coverage codes match N regions yields N products. The handle
// is fully deterministic so that re-running a sync upserts instead of
// duplicating.
type Product struct {
	ID          string
	Handle      string
	Title       string
	Description string
	Status      ProductStatus
	// CollectionHandle ties the product to its plan collection.
	CollectionHandle string
	// PlanID is the originating provider plan.
	PlanID   string
	RegionID string
	// Coverages, Days, APN and the allowance fields mirror the provider plan.
	Coverages        []string
	Days             int
	APN              string
	DataAllowance    int64
	DayDataAllowance int64
	IsDaily          bool
	// Countries is the union of matched region countries, uppercase ISO-2.
	Countries []string
	Variant   Variant
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant is the single purchasable variant of a product. eSIM plans are
// digital goods: inventory is never tracked.
type Variant struct {
	Title string
	// Amount is the price in minor units of CurrencyCode.
	Amount       int64
	CurrencyCode string
}

// ProductHandle derives the deterministic product handle for a plan/region
// pair.
func ProductHandle(planID, regionID string) string {
	return fmt.Sprintf("%s-%s", planID, regionID)
}

// MinorUnits converts a provider decimal price string to integer minor units
// (price × 100, half-up rounding).
func MinorUnits(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrProductInvalidPrice, price)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Validate validates the product invariants.
func (p *Product) Validate() error {
	if p.Handle == "" {
		return ErrProductMissingHandle
	}
	if p.Title == "" {
		return ErrProductMissingTitle
	}
	if p.Variant.Amount < 0 || p.Variant.CurrencyCode == "" {
		return ErrProductInvalidPrice
	}
	return nil
}
