package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the read-only contract against the catalog.
// The checkout pipeline never mutates products; it only confirms that a
// product referenced by a stock operation actually exists.
type ProductRepository interface {
	// Exists reports whether the catalog knows the product.
	Exists(ctx context.Context, productID kernel.UUID) (bool, error)
}
