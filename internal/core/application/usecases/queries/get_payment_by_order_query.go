package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPaymentByOrderQueryIsNotConstructed = errors.New(
	"GetPaymentByOrderQuery must be created via NewGetPaymentByOrderQuery constructor",
)

// GetPaymentByOrderQuery retrieves the payment attached to an order.
// Gated the same way as the order itself: owner or admin.
type GetPaymentByOrderQuery struct {
	orderID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewGetPaymentByOrderQuery creates a query for an order's payment.
func NewGetPaymentByOrderQuery(
	orderID kernel.UUID,
	principal services.Principal,
) (GetPaymentByOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentByOrderQuery{}, err
	}
	if err := principal.UserID().Validate(); err != nil {
		return GetPaymentByOrderQuery{}, err
	}

	return GetPaymentByOrderQuery{
		orderID:   orderID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose payment is read.
func (q GetPaymentByOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Principal returns the caller's resolved identity.
func (q GetPaymentByOrderQuery) Principal() services.Principal {
	return q.principal
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentByOrderQueryIsNotConstructed)
}

// GetPaymentByOrderQueryResponse is the payment read model.
// CorrelationToken carries the gateway remote-order id while pending and the
// gateway payment id once settled; it is empty for plain COD.
type GetPaymentByOrderQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Method           payment.Method
	Status           payment.Status
	CorrelationToken string
	Amount           decimal.Decimal
	Currency         string
}
