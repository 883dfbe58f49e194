package payment

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Method identifies how a payment is collected.
type Method int

const (
	// MethodUnknown represents an invalid or undefined method.
	MethodUnknown Method = iota

	// MethodCOD is cash on delivery; settlement happens when an authorized
	// operator confirms receipt.
	MethodCOD

	// MethodOnline routes through the external payment gateway.
	MethodOnline
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown: "Unknown",
		MethodCOD:     "COD",
		MethodOnline:  "ONLINE",
	}
}

// MethodFromString parses a wire representation ("COD", "ONLINE").
func MethodFromString(s string) (Method, error) {
	switch s {
	case "COD":
		return MethodCOD, nil
	case "ONLINE":
		return MethodOnline, nil
	default:
		return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a known method", s))
	}
}

// Validate checks if the Method value is valid.
func (m Method) Validate() error {
	if m != MethodCOD && m != MethodOnline {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// String returns the wire representation of the method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
