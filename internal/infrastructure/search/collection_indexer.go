package search

import (
	"context"
	"fmt"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/meilisearch/meilisearch-go"
)

// collectionIndexName is the Meilisearch index holding browsable collections
const collectionIndexName = "collections"

// CollectionDocument is the search document shape for one collection
type CollectionDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	Thumbnail string `json:"thumbnail"`
}

// MeiliCollectionIndexer pushes catalog collections into a Meilisearch index
// for storefront search.
type MeiliCollectionIndexer struct {
	client      meilisearch.ServiceManager
	collections catalog.CollectionRepository
}

// NewMeiliCollectionIndexer creates a new MeiliCollectionIndexer
func NewMeiliCollectionIndexer(host, apiKey string, collections catalog.CollectionRepository) *MeiliCollectionIndexer {
	return &MeiliCollectionIndexer{
		client:      meilisearch.New(host, meilisearch.WithAPIKey(apiKey)),
		collections: collections,
	}
}

// IndexAll loads all collections and upserts them as search documents.
// Documents share collection IDs, so repeated runs overwrite in place.
func (i *MeiliCollectionIndexer) IndexAll(ctx context.Context) (int, error) {
	collections, err := i.collections.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("search: failed to load collections: %w", err)
	}
	if len(collections) == 0 {
		return 0, nil
	}

	documents := make([]CollectionDocument, len(collections))
	for idx, c := range collections {
		documents[idx] = CollectionDocument{
			ID:        c.ID,
			Title:     c.Title,
			Handle:    c.Handle,
			Thumbnail: c.Image,
		}
	}

	if _, err := i.client.Index(collectionIndexName).AddDocumentsWithContext(ctx, documents); err != nil {
		return 0, fmt.Errorf("search: failed to index collections: %w", err)
	}
	return len(documents), nil
}
