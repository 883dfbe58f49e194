package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetAvailableStockQueryIsNotConstructed = errors.New(
	"GetAvailableStockQuery must be created via NewGetAvailableStockQuery constructor",
)

// GetAvailableStockQuery retrieves the available quantity for a product.
// Availability is public; no principal is required.
type GetAvailableStockQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableStockQuery creates a query for a product's availability.
func NewGetAvailableStockQuery(productID kernel.UUID) (GetAvailableStockQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetAvailableStockQuery{}, err
	}

	return GetAvailableStockQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the product whose availability is read.
func (q GetAvailableStockQuery) ProductID() kernel.UUID {
	return q.productID
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableStockQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableStockQueryIsNotConstructed)
}

// GetAvailableStockQueryResponse reports a product's available quantity.
// Quantity is zero both for an exhausted record and for a known product that
// never needed stock tracking; an unknown product is an error, not a zero.
type GetAvailableStockQueryResponse struct {
	ProductID kernel.UUID
	Quantity  int
}
