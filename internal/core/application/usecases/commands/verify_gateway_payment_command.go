package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var (
	ErrVerifyGatewayPaymentCommandIsNotConstructed = errors.New(
		"VerifyGatewayPaymentCommand must be created via NewVerifyGatewayPaymentCommand constructor",
	)
	ErrExternalOrderIDIsRequired   = errors.New("external order id is required")
	ErrExternalPaymentIDIsRequired = errors.New("external payment id is required")
	ErrSignatureIsRequired         = errors.New("signature is required")
)

// VerifyGatewayPaymentCommand carries the payment provider's checkout
// callback: the remote order id, the remote payment id, and the signature
// the provider computed over both.
type VerifyGatewayPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	principal         services.Principal
	externalOrderID   string
	externalPaymentID string
	signature         string

	guard guard.ConstructorGuard
}

// NewVerifyGatewayPaymentCommand creates the verification command.
func NewVerifyGatewayPaymentCommand(
	orderID kernel.UUID,
	principal services.Principal,
	externalOrderID, externalPaymentID, signature string,
) (VerifyGatewayPaymentCommand, error) {
	cmd := VerifyGatewayPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
		cmd.setExternalOrderID(externalOrderID),
		cmd.setExternalPaymentID(externalPaymentID),
		cmd.setSignature(signature),
	); err != nil {
		return VerifyGatewayPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyGatewayPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyGatewayPaymentCommandIsNotConstructed)
}

// OrderID returns the order whose payment is being verified.
func (c VerifyGatewayPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal returns the caller.
func (c VerifyGatewayPaymentCommand) Principal() services.Principal {
	return c.principal
}

// ExternalOrderID returns the provider's order id from the callback.
func (c VerifyGatewayPaymentCommand) ExternalOrderID() string {
	return c.externalOrderID
}

// ExternalPaymentID returns the provider's payment id from the callback.
func (c VerifyGatewayPaymentCommand) ExternalPaymentID() string {
	return c.externalPaymentID
}

// Signature returns the provider's signature over "orderID|paymentID".
func (c VerifyGatewayPaymentCommand) Signature() string {
	return c.signature
}

func (c *VerifyGatewayPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyGatewayPaymentCommand) setPrincipal(principal services.Principal) error {
	if err := principal.UserID().Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}

func (c *VerifyGatewayPaymentCommand) setExternalOrderID(id string) error {
	if id == "" {
		return ErrExternalOrderIDIsRequired
	}

	c.externalOrderID = id
	return nil
}

func (c *VerifyGatewayPaymentCommand) setExternalPaymentID(id string) error {
	if id == "" {
		return ErrExternalPaymentIDIsRequired
	}

	c.externalPaymentID = id
	return nil
}

func (c *VerifyGatewayPaymentCommand) setSignature(signature string) error {
	if signature == "" {
		return ErrSignatureIsRequired
	}

	c.signature = signature
	return nil
}
