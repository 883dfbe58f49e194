package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrConfirmCodPaymentCommandIsNotConstructed = errors.New(
	"ConfirmCodPaymentCommand must be created via NewConfirmCodPaymentCommand constructor",
)

// ConfirmCodPaymentCommand represents an operator confirming that cash was
// collected on delivery for an order.
type ConfirmCodPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewConfirmCodPaymentCommand creates the COD confirmation command.
func NewConfirmCodPaymentCommand(orderID kernel.UUID, principal services.Principal) (ConfirmCodPaymentCommand, error) {
	cmd := ConfirmCodPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
	); err != nil {
		return ConfirmCodPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmCodPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmCodPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose COD payment is confirmed.
func (c ConfirmCodPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal returns the operator.
func (c ConfirmCodPaymentCommand) Principal() services.Principal {
	return c.principal
}

func (c *ConfirmCodPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmCodPaymentCommand) setPrincipal(principal services.Principal) error {
	if err := principal.UserID().Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
