package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/esimhub/backend/internal/domain/coverage"
)

var (
	ErrRegionNotFound      = errors.New("catalog: region not found")
	ErrRegionInvalidID     = errors.New("catalog: invalid region ID")
	ErrRegionMissingName   = errors.New("catalog: region name is required")
	ErrRegionNoCurrency    = errors.New("catalog: region currency code is required")
	ErrRegionAlreadyExists = errors.New("catalog: region already exists")
)

// Region is an internal geographic and currency grouping used for pricing.
// Its ID is derived deterministically from the coverage-group key, which makes
// region creation idempotent: at most one Region exists per group key.
type Region struct {
	// ID is "region-<group-key>" in lowercase, e.g. "region-eu".
	ID           string
	Name         string
	CurrencyCode string
	// Countries holds ISO 3166-1 alpha-2 codes, lowercase.
	Countries            []string
	PaymentProviders     []string
	FulfillmentProviders []string
	// CoverageCodes records which provider coverage codes map to this region.
	CoverageCodes []string
	// OriginalCoverage is the coverage code that first produced this region.
	OriginalCoverage string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RegionID derives the deterministic region ID for a coverage-group key.
func RegionID(key coverage.GroupKey) string {
	return fmt.Sprintf("region-%s", strings.ToLower(string(key)))
}

// NewRegionFromGroup builds a Region from a coverage group. originalCoverage
// is the provider coverage code that triggered creation.
func NewRegionFromGroup(group *coverage.Group, originalCoverage string) *Region {
	now := time.Now()
	countries := make([]string, len(group.Countries))
	for i, c := range group.Countries {
		countries[i] = strings.ToLower(c)
	}
	return &Region{
		ID:                   RegionID(group.Key),
		Name:                 group.Name,
		CurrencyCode:         strings.ToLower(group.CurrencyCode),
		Countries:            countries,
		PaymentProviders:     []string{"manual", "paypal"},
		FulfillmentProviders: []string{"manual"},
		CoverageCodes:        append([]string(nil), group.CoverageCodes...),
		OriginalCoverage:     originalCoverage,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Validate validates the region invariants.
func (r *Region) Validate() error {
	if !strings.HasPrefix(r.ID, "region-") {
		return ErrRegionInvalidID
	}
	if r.Name == "" {
		return ErrRegionMissingName
	}
	if r.CurrencyCode == "" {
		return ErrRegionNoCurrency
	}
	return nil
}

// Matches reports whether any of the given package coverage codes matches
// this region's stored coverage codes.
func (r *Region) Matches(packageCodes []string) bool {
	return coverage.CodesIntersect(r.CoverageCodes, packageCodes)
}
