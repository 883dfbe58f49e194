package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPaymentByOrderQueryHandler reads an order's payment joined with the
// order's owner so the ownership check needs no second round trip.
type GetPaymentByOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentByOrderQueryHandler creates a handler for payment reads.
func NewGetPaymentByOrderQueryHandler(db *gorm.DB) GetPaymentByOrderQueryHandler {
	return GetPaymentByOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no payment is
// attached to the order and services.ErrAccessDenied for foreign callers.
func (h GetPaymentByOrderQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentByOrderQuery,
) (GetPaymentByOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentByOrderQueryResponse{}, err
	}

	var id, orderID, ownerID uuid.UUID
	var method, status int
	var correlationToken string
	var amount decimal.Decimal
	var currency string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_id,
			o.owner_id,
			p.method,
			p.status,
			p.correlation_token,
			p.amount,
			p.currency
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE p.order_id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &orderID, &ownerID, &method, &status, &correlationToken, &amount, &currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetPaymentByOrderQueryResponse{},
				errs.NewObjectNotFoundError("payment for order", query.OrderID().String())
		}
		return GetPaymentByOrderQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return GetPaymentByOrderQueryResponse{}, err
	}

	policy := services.NewAccessPolicy()
	if err = policy.Authorize(query.Principal(), owner); err != nil {
		return GetPaymentByOrderQueryResponse{}, err
	}

	paymentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPaymentByOrderQueryResponse{}, err
	}
	settledOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetPaymentByOrderQueryResponse{}, err
	}

	return GetPaymentByOrderQueryResponse{
		ID:               paymentID,
		OrderID:          settledOrderID,
		Method:           payment.Method(method),
		Status:           payment.Status(status),
		CorrelationToken: correlationToken,
		Amount:           amount,
		Currency:         currency,
	}, nil
}
