package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrAdvanceFulfillmentCommandIsNotConstructed = errors.New(
	"AdvanceFulfillmentCommand must be created via NewAdvanceFulfillmentCommand constructor",
)

// Stage names an operator-driven fulfillment transition.
type Stage int

const (
	// StageUnknown represents an invalid stage.
	StageUnknown Stage = iota

	// StageConfirm acknowledges a paid order (Paid -> Confirmed).
	StageConfirm

	// StageShip records warehouse dispatch (Confirmed -> Shipped).
	StageShip

	// StageDeliver records handover to the buyer (Shipped -> Delivered).
	StageDeliver
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageConfirm: "Confirm",
		StageShip:    "Ship",
		StageDeliver: "Deliver",
	}
}

// StageFromString parses an operator-facing stage name.
func StageFromString(s string) (Stage, error) {
	for stage, name := range getStageStrings() {
		if name == s {
			return stage, nil
		}
	}
	return StageUnknown, fmt.Errorf("%q is not a valid fulfillment stage", s)
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid fulfillment stage", s)
	}
	return nil
}

// String returns the stage's name.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// AdvanceFulfillmentCommand represents an operator moving an order one step
// along the fulfillment pipeline.
type AdvanceFulfillmentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal services.Principal
	stage     Stage

	guard guard.ConstructorGuard
}

// NewAdvanceFulfillmentCommand creates the fulfillment command.
func NewAdvanceFulfillmentCommand(
	orderID kernel.UUID,
	principal services.Principal,
	stage Stage,
) (AdvanceFulfillmentCommand, error) {
	cmd := AdvanceFulfillmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPrincipal(principal),
		cmd.setStage(stage),
	); err != nil {
		return AdvanceFulfillmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceFulfillmentCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceFulfillmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Principal returns the operator.
func (c AdvanceFulfillmentCommand) Principal() services.Principal {
	return c.principal
}

// Stage returns the requested transition.
func (c AdvanceFulfillmentCommand) Stage() Stage {
	return c.stage
}

func (c *AdvanceFulfillmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceFulfillmentCommand) setPrincipal(principal services.Principal) error {
	if err := principal.UserID().Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}

func (c *AdvanceFulfillmentCommand) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}
