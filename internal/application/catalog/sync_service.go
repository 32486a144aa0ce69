package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/domain/coverage"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncService reconciles the external provider catalog into local regions,
// collections and products. Every derived identifier is deterministic, so a
// re-run after a partial failure converges to the same state instead of
// duplicating rows.
type SyncService struct {
	client      provider.Client
	regions     catalog.RegionRepository
	collections catalog.CollectionRepository
	products    catalog.ProductRepository
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	client provider.Client,
	regions catalog.RegionRepository,
	collections catalog.CollectionRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		client:      client,
		regions:     regions,
		collections: collections,
		products:    products,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Region sync
// ---------------------------------------------------------------------------

// SyncRegions fetches the provider catalog, collects the distinct coverage
// codes and creates one region per matched coverage group. Existing regions
// are never modified; coverage codes without a group mapping are logged and
// skipped.
func (s *SyncService) SyncRegions(ctx context.Context) (*RegionSyncResult, error) {
	packages, err := s.client.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	codes := distinctCoverages(packages)
	result := &RegionSyncResult{
		ProcessedCoverages: codes,
		UnknownCoverages:   []string{},
	}

	for _, code := range codes {
		group := coverage.ResolveGroup(code)
		if group == nil {
			s.logger.Warn("no region mapping for coverage", zap.String("coverage", code))
			result.UnknownCoverages = append(result.UnknownCoverages, code)
			continue
		}

		regionID := catalog.RegionID(group.Key)
		exists, err := s.regions.ExistsByID(ctx, regionID)
		if err != nil {
			return nil, fmt.Errorf("region sync: %w", err)
		}
		if exists {
			result.RegionsSkipped++
			continue
		}

		region := catalog.NewRegionFromGroup(group, code)
		if err := region.Validate(); err != nil {
			return nil, err
		}
		if err := s.regions.Save(ctx, region); err != nil {
			return nil, fmt.Errorf("region sync: save %s: %w", regionID, err)
		}
		s.logger.Info("created region",
			zap.String("region_id", regionID),
			zap.String("coverage", code),
		)
		result.RegionsCreated++
	}

	all, err := s.regions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("region sync: %w", err)
	}
	result.TotalRegions = len(all)
	return result, nil
}

// ---------------------------------------------------------------------------
// Catalog sync
// ---------------------------------------------------------------------------

// SyncCatalog runs the full reconciliation: continent collections first, then
// one collection and N products per provider package. A failure inside one
// package is logged and skipped; the rest of the run continues. Only a fetch
// failure or an invalid catalog payload aborts the run.
func (s *SyncService) SyncCatalog(ctx context.Context) (*CatalogSyncResult, error) {
	packages, err := s.client.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	regions, err := s.regions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog sync: %w", err)
	}

	result := &CatalogSyncResult{PackagesTotal: len(packages)}

	if err := s.syncContinentCollections(ctx, result); err != nil {
		return nil, err
	}

	for _, pkg := range packages {
		if len(pkg.Coverages) == 0 {
			s.logger.Warn("package has no coverages, skipping", zap.String("plan_id", pkg.PlanID))
			continue
		}
		result.PackagesValid++

		if err := s.syncPackage(ctx, &pkg, regions, result); err != nil {
			s.logger.Error("failed to sync package",
				zap.String("plan_id", pkg.PlanID),
				zap.Error(err),
			)
			result.PackagesFailed++
			result.SkippedPlans = append(result.SkippedPlans, pkg.PlanID)
		}
	}

	s.logger.Info("catalog sync finished",
		zap.Int("packages_total", result.PackagesTotal),
		zap.Int("packages_failed", result.PackagesFailed),
		zap.Int("products_upserted", result.ProductsUpserted),
	)
	return result, nil
}

// syncContinentCollections upserts the fixed continental buckets by handle
func (s *SyncService) syncContinentCollections(ctx context.Context, result *CatalogSyncResult) error {
	for _, continent := range coverage.Continents() {
		handle := catalog.ContinentCollectionHandle(continent.Code)
		desired := &catalog.Collection{
			ID:            uuid.NewString(),
			Handle:        handle,
			Title:         continent.Title,
			IsContinent:   true,
			Continent:     continent.Code,
			Image:         continent.Image,
			CoverageCodes: append([]string(nil), continent.CoverageCodes...),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.upsertCollection(ctx, desired); err != nil {
			return fmt.Errorf("catalog sync: continent %s: %w", continent.Code, err)
		}
		result.ContinentCollections++
	}
	return nil
}

// syncPackage reconciles one provider package: its plan collection and one
// product per matching region.
func (s *SyncService) syncPackage(ctx context.Context, pkg *provider.Package, regions []catalog.Region, result *CatalogSyncResult) error {
	matching := matchingRegions(regions, pkg.Coverages)
	if len(matching) == 0 {
		return fmt.Errorf("no matching regions for coverages %v", pkg.Coverages)
	}

	countryCodes := unionCountries(matching)
	continentCode := coverage.PrimaryContinent(pkg.Coverages)
	image := coverage.GlobalImage
	if continent := coverage.ContinentByCode(continentCode); continent != nil {
		image = continent.Image
	}

	regionIDs := make([]string, len(matching))
	for i, region := range matching {
		regionIDs[i] = region.ID
	}

	collection := &catalog.Collection{
		ID:            uuid.NewString(),
		Handle:        catalog.PackageCollectionHandle(pkg.Coverages[0], pkg.PlanID),
		Title:         packageTitle(pkg),
		IsContinent:   false,
		Continent:     continentCode,
		Image:         image,
		PlanID:        pkg.PlanID,
		RegionIDs:     regionIDs,
		CountryCodes:  countryCodes,
		CoverageCodes: append([]string(nil), pkg.Coverages...),
		APN:           pkg.APN,
		Days:          pkg.Days,
		Price:         pkg.Price,
		CurrencyCode:  pkg.Currency,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.upsertCollection(ctx, collection); err != nil {
		return err
	}
	result.PackageCollections++

	for _, region := range matching {
		if err := s.upsertProduct(ctx, pkg, &region, collection.Handle, countryCodes); err != nil {
			return err
		}
		result.ProductsUpserted++
	}
	return nil
}

// upsertCollection looks up by handle and either overwrites the stored
// metadata or creates a fresh collection.
func (s *SyncService) upsertCollection(ctx context.Context, desired *catalog.Collection) error {
	existing, err := s.collections.FindByHandle(ctx, desired.Handle)
	switch {
	case err == nil:
		existing.ApplyMetadataFrom(desired)
		return s.collections.Save(ctx, existing)
	case err == catalog.ErrCollectionNotFound:
		if err := desired.Validate(); err != nil {
			return err
		}
		return s.collections.Save(ctx, desired)
	default:
		return err
	}
}

// upsertProduct builds the product for one package/region pair and saves it
// under its deterministic handle, priced in the region currency.
func (s *SyncService) upsertProduct(ctx context.Context, pkg *provider.Package, region *catalog.Region, collectionHandle string, countryCodes []string) error {
	amount, err := catalog.MinorUnits(pkg.Price)
	if err != nil {
		return err
	}

	handle := catalog.ProductHandle(pkg.PlanID, region.ID)
	description := pkg.Remark
	if description == "" {
		description = fmt.Sprintf("eSIM package valid for %d days", pkg.Days)
	}

	desired := &catalog.Product{
		ID:               uuid.NewString(),
		Handle:           handle,
		Title:            pkg.PlanName,
		Description:      description,
		Status:           catalog.ProductStatusPublished,
		CollectionHandle: collectionHandle,
		PlanID:           pkg.PlanID,
		RegionID:         region.ID,
		Coverages:        append([]string(nil), pkg.Coverages...),
		Days:             pkg.Days,
		APN:              pkg.APN,
		DataAllowance:    pkg.DataAllowance,
		DayDataAllowance: pkg.DayDataAllowance,
		IsDaily:          pkg.IsDaily,
		Countries:        countryCodes,
		Variant: catalog.Variant{
			Title:        "eSIM",
			Amount:       amount,
			CurrencyCode: region.CurrencyCode,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	existing, err := s.products.FindByHandle(ctx, handle)
	switch {
	case err == nil:
		// keep the stored identity, refresh everything else
		desired.ID = existing.ID
		desired.CreatedAt = existing.CreatedAt
	case err == catalog.ErrProductNotFound:
		// fresh product
	default:
		return err
	}

	if err := desired.Validate(); err != nil {
		return err
	}
	return s.products.Save(ctx, desired)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// distinctCoverages extracts the sorted set of coverage codes across packages
func distinctCoverages(packages []provider.Package) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, pkg := range packages {
		for _, code := range pkg.Coverages {
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// matchingRegions returns the regions whose coverage codes intersect the
// package coverages
func matchingRegions(regions []catalog.Region, packageCodes []string) []catalog.Region {
	var matched []catalog.Region
	for _, region := range regions {
		if region.Matches(packageCodes) {
			matched = append(matched, region)
		}
	}
	return matched
}

// unionCountries collects the distinct uppercase country codes across regions
func unionCountries(regions []catalog.Region) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, region := range regions {
		for _, country := range region.Countries {
			upper := strings.ToUpper(country)
			if seen[upper] {
				continue
			}
			seen[upper] = true
			codes = append(codes, upper)
		}
	}
	sort.Strings(codes)
	return codes
}

// packageTitle falls back to a coverage/days title when the plan has no name
func packageTitle(pkg *provider.Package) string {
	if pkg.PlanName != "" {
		return pkg.PlanName
	}
	return fmt.Sprintf("%s %d Days", pkg.Coverages[0], pkg.Days)
}
