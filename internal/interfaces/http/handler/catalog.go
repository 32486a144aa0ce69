package handler

import (
	"context"

	appcatalog "github.com/esimhub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CollectionIndexer pushes the collection catalog into the search engine.
type CollectionIndexer interface {
	IndexAll(ctx context.Context) (int, error)
}

// CatalogHandler handles catalog reconciliation and seeding endpoints.
type CatalogHandler struct {
	BaseHandler
	sync    *appcatalog.SyncService
	seed    *appcatalog.SeedService
	indexer CollectionIndexer
}

// NewCatalogHandler creates a new CatalogHandler. indexer may be nil when
// search indexing is disabled.
func NewCatalogHandler(sync *appcatalog.SyncService, seed *appcatalog.SeedService, indexer CollectionIndexer) *CatalogHandler {
	return &CatalogHandler{sync: sync, seed: seed, indexer: indexer}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.POST("/regions/sync", h.SyncRegions)
		catalog.POST("/sync", h.SyncCatalog)
		catalog.POST("/index", h.IndexCollections)
	}
	setup := rg.Group("/setup")
	{
		setup.POST("/currencies", h.SeedCurrencies)
	}
}

// SyncRegions reconciles the provider coverage codes into store regions.
func (h *CatalogHandler) SyncRegions(c *gin.Context) {
	result, err := h.sync.SyncRegions(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncCatalog reconciles the provider plan catalog into collections and
// products.
func (h *CatalogHandler) SyncCatalog(c *gin.Context) {
	result, err := h.sync.SyncCatalog(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// IndexCollections pushes all collections into the search index.
func (h *CatalogHandler) IndexCollections(c *gin.Context) {
	if h.indexer == nil {
		h.BadRequest(c, "search indexing is disabled")
		return
	}
	indexed, err := h.indexer.IndexAll(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"indexed": indexed})
}

// SeedCurrencies inserts the store's supported currencies.
func (h *CatalogHandler) SeedCurrencies(c *gin.Context) {
	result, err := h.seed.SeedCurrencies(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}
