package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrRefundPaymentCommandIsNotConstructed = errors.New(
	"RefundPaymentCommand must be created via NewRefundPaymentCommand constructor",
)

// RefundPaymentCommand represents an operator returning a settled payment.
type RefundPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewRefundPaymentCommand creates the refund command.
func NewRefundPaymentCommand(orderID kernel.UUID, principal services.Principal) (RefundPaymentCommand, error) {
	cmd := RefundPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
	); err != nil {
		return RefundPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRefundPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment is refunded.
func (c RefundPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal returns the operator.
func (c RefundPaymentCommand) Principal() services.Principal {
	return c.principal
}

func (c *RefundPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RefundPaymentCommand) setPrincipal(principal services.Principal) error {
	if err := principal.UserID().Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
