package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCollectionNotFound      = errors.New("catalog: collection not found")
	ErrCollectionMissingHandle = errors.New("catalog: collection handle is required")
	ErrCollectionMissingTitle  = errors.New("catalog: collection title is required")
)

// Collection is a browsing grouping of purchasable items, either one of the
// fixed continental buckets or a per-plan grouping. The handle uniquely
// determines a collection; reconciliation always looks up by handle before
// creating.
type Collection struct {
	ID     string
	Handle string
	Title  string
	// IsContinent marks the fixed continental collections.
	IsContinent bool
	// Continent is the continent classification ("EU", "ASIA", ..., "GLOBAL").
	Continent string
	Image     string
	// PlanID is the originating provider plan for package collections.
	PlanID string
	// RegionIDs are the regions whose coverage codes matched the plan.
	RegionIDs []string
	// CountryCodes is the union of countries from all matched regions,
	// uppercase ISO-2.
	CountryCodes  []string
	CoverageCodes []string
	APN           string
	Days          int
	Price         string
	CurrencyCode  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContinentCollectionHandle derives the handle for a continent bucket.
func ContinentCollectionHandle(code string) string {
	return fmt.Sprintf("continent-%s", strings.ToLower(code))
}

// PackageCollectionHandle derives the handle for a plan collection from its
// primary coverage code and plan ID.
func PackageCollectionHandle(primaryCoverage, planID string) string {
	return fmt.Sprintf("%s-%s", primaryCoverage, planID)
}

// Validate validates the collection invariants.
func (c *Collection) Validate() error {
	if c.Handle == "" {
		return ErrCollectionMissingHandle
	}
	if c.Title == "" {
		return ErrCollectionMissingTitle
	}
	return nil
}

// ApplyMetadataFrom overwrites the mutable reconciliation fields with the
// values from other, keeping identity fields intact. Collection updates are
// full metadata overwrites.
func (c *Collection) ApplyMetadataFrom(other *Collection) {
	c.Title = other.Title
	c.IsContinent = other.IsContinent
	c.Continent = other.Continent
	c.Image = other.Image
	c.PlanID = other.PlanID
	c.RegionIDs = other.RegionIDs
	c.CountryCodes = other.CountryCodes
	c.CoverageCodes = other.CoverageCodes
	c.APN = other.APN
	c.Days = other.Days
	c.Price = other.Price
	c.CurrencyCode = other.CurrencyCode
	c.UpdatedAt = time.Now()
}
