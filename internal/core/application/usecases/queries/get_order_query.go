// Package queries implements the read side of the application layer. Query
// handlers bypass the aggregates and read the storage model directly; access
// gating against the fetched owner happens inside the handler because the
// owner is not known until the row is read.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its frozen line items.
// Only the order's owner or an admin may read it.
type GetOrderQuery struct {
	orderID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve a single order.
func NewGetOrderQuery(orderID kernel.UUID, principal services.Principal) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := principal.UserID().Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Principal returns the caller's resolved identity.
func (q GetOrderQuery) Principal() services.Principal {
	return q.principal
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderItemResponse is one frozen line item of an order read model.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// GetOrderQueryResponse is the order read model returned to callers.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	OwnerID     kernel.UUID
	TotalAmount decimal.Decimal
	Currency    string
	Status      order.Status
	CreatedAt   time.Time
	Items       []OrderItemResponse
}
