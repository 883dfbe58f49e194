package payment

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// ErrInvalidStateTransition indicates a payment transition whose precondition
// does not hold. It is a caller error and is never retried.
var ErrInvalidStateTransition = errors.New("invalid payment state transition")

// Status represents the settlement state of a payment.
//
// State transitions:
//
//	Pending ──> Success ──> Refunded
//	   │  ▲        ▲
//	   ▼  │        │ (idempotent replay)
//	 Failed ───────┘
//
// Pending and Failed may re-enter Pending when the online flow is restarted
// (a new gateway order after a failed verification). Success is reachable
// repeatedly as a no-op so settlement callbacks tolerate replays. Refunded is
// terminal.
//
// The reference system carried a separate CONFIRMED status that overlapped
// with SUCCESS; here a single Success settled state covers both the COD
// confirmation and the verified gateway callback.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the payment awaits settlement.
	Pending

	// Success means the payment settled. The order must be Paid or later.
	Success

	// Failed means a settlement attempt was rejected (e.g. bad signature).
	Failed

	// Refunded means a settled payment was returned. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Success:  "Success",
		Failed:   "Failed",
		Refunded: "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Success:  "Success",
		Failed:   "Failed",
		Refunded: "Refunded",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) transitionError(target Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s, target)
}

// Settle transitions the status to Success.
//
// Valid transitions:
//   - Pending -> Success
//   - Failed -> Success (a later attempt with a valid signature)
//   - Success -> Success (idempotent replay, no-op)
func (s Status) Settle() (Status, error) {
	switch s {
	case Pending, Failed, Success:
		return Success, nil
	default:
		return 0, s.transitionError(Success)
	}
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Pending -> Failed
//   - Failed -> Failed (repeat rejection, no-op)
func (s Status) Fail() (Status, error) {
	switch s {
	case Pending, Failed:
		return Failed, nil
	default:
		return 0, s.transitionError(Failed)
	}
}

// Reopen transitions the status back to Pending for a fresh online attempt.
//
// Valid transitions:
//   - Pending -> Pending (no-op)
//   - Failed -> Pending
func (s Status) Reopen() (Status, error) {
	switch s {
	case Pending, Failed:
		return Pending, nil
	default:
		return 0, s.transitionError(Pending)
	}
}

// Refund transitions the status to Refunded.
//
// Valid transitions:
//   - Success -> Refunded (only settled payments can be refunded)
func (s Status) Refund() (Status, error) {
	if s != Success {
		return 0, s.transitionError(Refunded)
	}
	return Refunded, nil
}
