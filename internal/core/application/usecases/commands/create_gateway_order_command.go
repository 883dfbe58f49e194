package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrCreateGatewayOrderCommandIsNotConstructed = errors.New(
	"CreateGatewayOrderCommand must be created via NewCreateGatewayOrderCommand constructor",
)

// CreateGatewayOrderCommand represents a request to open (or reopen) the
// online payment flow for an order: register a remote order with the payment
// provider and bind its id to our payment record.
type CreateGatewayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal services.Principal

	guard guard.ConstructorGuard
}

// NewCreateGatewayOrderCommand creates the command for the given order on
// behalf of the resolved principal.
func NewCreateGatewayOrderCommand(orderID kernel.UUID, principal services.Principal) (CreateGatewayOrderCommand, error) {
	cmd := CreateGatewayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
	); err != nil {
		return CreateGatewayOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateGatewayOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateGatewayOrderCommandIsNotConstructed)
}

// OrderID returns the order to open the gateway flow for.
func (c CreateGatewayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal returns the caller.
func (c CreateGatewayOrderCommand) Principal() services.Principal {
	return c.principal
}

func (c *CreateGatewayOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateGatewayOrderCommand) setPrincipal(principal services.Principal) error {
	if err := principal.UserID().Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
