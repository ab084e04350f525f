package ports

import (
	"context"

	"github.com/kolombo420/tarot/internal/domain"
)

// CatalogStore provides access to card catalogs.
type CatalogStore interface {
	GetCatalog(ctx context.Context, catalogID string) (domain.Catalog, error)
}
