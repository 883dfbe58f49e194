package payment

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errs.NewValueIsRequiredError(
		"Payment must be created via NewPayment constructor")

	// ErrPaymentAlreadyExists reports a violation of the one-payment-per-order
	// rule. Surfaced by the repository on insert.
	ErrPaymentAlreadyExists = errors.New("payment already exists for this order")

	// ErrPaymentAlreadySettled rejects restarting the gateway flow for a
	// payment that has already settled.
	ErrPaymentAlreadySettled = errors.New("payment already settled")
)

// Payment tracks the settlement of exactly one order: the collection method,
// the settlement status, and the gateway correlation token.
//
// The correlation token carries the gateway's remote-order id while the
// payment is pending and the gateway's payment id once it settles. At most
// one Payment exists per order; the repository enforces the uniqueness.
type Payment struct {
	// id is the unique identifier for the payment
	id kernel.UUID

	// orderID references the order being settled (unique across payments)
	orderID kernel.UUID

	// method is how the payment is collected (COD or gateway)
	method Method

	// status is the settlement state machine
	status Status

	// correlationToken links this payment to the remote gateway order/payment
	correlationToken string

	// amount is the order total this payment settles
	amount kernel.Money

	// isConstructed ensures the payment was created via a constructor
	isConstructed bool
}

// NewPayment creates a Pending payment for an order.
// COD and online payments both start Pending; COD settles via operator
// confirmation, online via the gateway verification callback.
func NewPayment(id, orderID kernel.UUID, method Method, amount kernel.Money) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		method:        method,
		status:        Pending,
		amount:        amount,
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id, orderID kernel.UUID,
	method Method,
	status Status,
	correlationToken string,
	amount kernel.Money,
) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}

	return &Payment{
		id:               id,
		orderID:          orderID,
		method:           method,
		status:           status,
		correlationToken: correlationToken,
		amount:           amount,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Payment instance was properly constructed.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order this payment settles.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Method returns the collection method.
func (p *Payment) Method() Method {
	return p.method
}

// Status returns the settlement status.
func (p *Payment) Status() Status {
	return p.status
}

// CorrelationToken returns the gateway correlation token: the remote-order id
// while pending, the gateway payment id once settled, empty for plain COD.
func (p *Payment) CorrelationToken() string {
	return p.correlationToken
}

// Amount returns the amount this payment settles.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// IsSettled reports whether the payment reached Success.
func (p *Payment) IsSettled() bool {
	return p.status == Success
}

// AttachGatewayOrder binds a freshly created remote gateway order to this
// payment: method flips to ONLINE, a Failed payment reopens to Pending, and
// the correlation token is replaced. The call is repeatable, each new remote
// order superseding the previous token, but a settled payment can never be
// sent back through the gateway.
func (p *Payment) AttachGatewayOrder(externalOrderID string) error {
	if p.status == Success {
		return ErrPaymentAlreadySettled
	}
	if externalOrderID == "" {
		return errs.NewValueIsRequiredError("external order id")
	}

	newStatus, err := p.status.Reopen()
	if err != nil {
		return err
	}

	p.method = MethodOnline
	p.status = newStatus
	p.correlationToken = externalOrderID
	return nil
}

// Settle marks the payment as Success and records the gateway payment id as
// the final correlation token. For COD confirmations externalPaymentID is
// empty and the existing token (if any) is kept. Idempotent on replay.
func (p *Payment) Settle(externalPaymentID string) error {
	newStatus, err := p.status.Settle()
	if err != nil {
		return err
	}

	p.status = newStatus
	if externalPaymentID != "" {
		p.correlationToken = externalPaymentID
	}
	return nil
}

// MarkFailed records a rejected settlement attempt (e.g. signature mismatch).
func (p *Payment) MarkFailed() error {
	newStatus, err := p.status.Fail()
	if err != nil {
		return err
	}
	p.status = newStatus
	return nil
}

// Refund marks a settled payment as Refunded.
// Fails with ErrInvalidStateTransition for any non-Success status.
func (p *Payment) Refund() error {
	newStatus, err := p.status.Refund()
	if err != nil {
		return err
	}
	p.status = newStatus
	return nil
}
