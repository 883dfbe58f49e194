package order

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// ErrInvalidStateTransition indicates a fulfillment transition whose
// precondition does not hold. It is a caller error and is never retried.
var ErrInvalidStateTransition = errors.New("invalid order state transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the checkout and fulfillment workflow.
//
// State transitions:
//
//	Created ──> Placed ──> Paid ──> Confirmed ──> Shipped ──> Delivered
//	   │          │          │           │            │
//	   └──────────┴──────────┴───────────┴────────────┴──> Cancelled
//	                         │           │            │
//	                         └───────────┴────────────┴──> Refunded
//
// Delivered, Cancelled, and Refunded are terminal. Paying an already paid
// order is a no-op rather than an error, which is what makes gateway callback
// replays safe.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status while checkout is still assembling the order.
	Created

	// Placed indicates checkout completed: stock reserved, totals frozen.
	Placed

	// Paid indicates the associated payment settled.
	Paid

	// Confirmed indicates the seller acknowledged the paid order.
	Confirmed

	// Shipped indicates the order left the warehouse.
	Shipped

	// Delivered indicates the order reached the buyer. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before delivery. Terminal.
	Cancelled

	// Refunded indicates a settled payment was returned. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Placed:    "Placed",
		Paid:      "Paid",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Refunded:  "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Placed:    "Placed",
		Paid:      "Paid",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Refunded:  "Refunded",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// transitionError builds the uniform failure for a disallowed transition.
func (s Status) transitionError(target Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s, target)
}

// Place transitions the status to Placed.
//
// Valid transitions:
//   - Created -> Placed (checkout completion)
func (s Status) Place() (Status, error) {
	if s != Created {
		return 0, s.transitionError(Placed)
	}
	return Placed, nil
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Placed -> Paid (payment settled)
//   - Paid -> Paid (idempotent replay, no-op)
func (s Status) Pay() (Status, error) {
	if s == Paid {
		return Paid, nil
	}
	if s != Placed {
		return 0, s.transitionError(Paid)
	}
	return Paid, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Paid -> Confirmed (seller acknowledgement)
func (s Status) Confirm() (Status, error) {
	if s != Paid {
		return 0, s.transitionError(Confirmed)
	}
	return Confirmed, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Confirmed -> Shipped
func (s Status) Ship() (Status, error) {
	if s != Confirmed {
		return 0, s.transitionError(Shipped)
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered, the happy-path terminal state.
//
// Valid transitions:
//   - Shipped -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, s.transitionError(Delivered)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Allowed from any pre-delivery, non-terminal state.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Created, Placed, Paid, Confirmed, Shipped:
		return Cancelled, nil
	default:
		return 0, s.transitionError(Cancelled)
	}
}

// Refund transitions the status to Refunded.
// Allowed only from states a settled payment can reach; the caller must
// additionally verify the payment itself is settled.
func (s Status) Refund() (Status, error) {
	switch s {
	case Paid, Confirmed, Shipped:
		return Refunded, nil
	default:
		return 0, s.transitionError(Refunded)
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}
