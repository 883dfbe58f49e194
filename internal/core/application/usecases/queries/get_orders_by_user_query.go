package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
	"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
)

// GetOrdersByUserQuery retrieves a buyer's order history, newest first.
// Buyers may list their own orders; admins may list anyone's.
type GetOrdersByUserQuery struct {
	ownerID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery creates a query for a buyer's order history.
// Authorization runs here rather than in the handler because the target owner
// is an explicit parameter, not something read from storage.
func NewGetOrdersByUserQuery(
	ownerID kernel.UUID,
	principal services.Principal,
) (GetOrdersByUserQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetOrdersByUserQuery{}, err
	}
	if err := services.NewAccessPolicy().Authorize(principal, ownerID); err != nil {
		return GetOrdersByUserQuery{}, err
	}

	return GetOrdersByUserQuery{
		ownerID:   ownerID,
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OwnerID returns the buyer whose orders are listed.
func (q GetOrdersByUserQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}
