package catalog

// RegionSyncResult summarizes one region sync run.
type RegionSyncResult struct {
	ProcessedCoverages []string `json:"processed_coverages"`
	RegionsCreated     int      `json:"regions_created"`
	RegionsSkipped     int      `json:"regions_skipped"`
	UnknownCoverages   []string `json:"unknown_coverages"`
	TotalRegions       int      `json:"total_regions"`
}

// CatalogSyncResult summarizes one catalog reconciliation run.
type CatalogSyncResult struct {
	PackagesTotal        int      `json:"packages_total"`
	PackagesValid        int      `json:"packages_valid"`
	PackagesFailed       int      `json:"packages_failed"`
	ContinentCollections int      `json:"continent_collections"`
	PackageCollections   int      `json:"package_collections"`
	ProductsUpserted     int      `json:"products_upserted"`
	SkippedPlans         []string `json:"skipped_plans,omitempty"`
}
