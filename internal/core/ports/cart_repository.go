package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository defines the read-and-clear contract checkout has with the
// cart storage. Building the cart up (adding and removing lines) belongs to
// the cart service; checkout only consumes the result.
type CartRepository interface {
	// GetByOwner retrieves the buyer's current cart with all line items.
	// A buyer without stored lines gets an empty, valid cart.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error)

	// Clear removes every line from the buyer's cart. Called inside the
	// checkout transaction after the order is persisted.
	Clear(ctx context.Context, ownerID kernel.UUID) error
}
