package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created through NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// currencyCodeLength is the length of an ISO-4217 alphabetic currency code.
const currencyCodeLength = 3

// minorUnitExponent is the number of decimal places carried by two-decimal
// currencies; the gateway expects amounts expressed in this minor unit
// (e.g. paise for INR).
const minorUnitExponent = 2

// Money is an immutable value object representing a monetary amount in a
// specific currency. Amounts use arbitrary-precision decimals so that order
// totals never suffer binary floating point drift.
//
// The zero value of Money is invalid and must be constructed via NewMoney.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.NewFromFloat(149.99), "INR")
//	if err != nil {
//	    // handle validation error
//	}
//	total := price.Mul(2)
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value after validating the currency code.
// The amount may be zero but never negative; negative monetary values have
// no meaning in carts, orders, or payments.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	if len(currency) != currencyCodeLength {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter ISO-4217 code", currency))
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Money value was created via NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO-4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Mul returns a new Money scaled by the given quantity, keeping the currency.
func (m Money) Mul(quantity int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		currency: m.currency,
		guard:    guard.NewConstructorGuard(),
	}
}

// Add returns the sum of two Money values.
// Adding values of different currencies is a programming error and fails.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MinorUnits converts the amount to the currency's minor unit using
// round-half-up at two decimal places, matching what payment gateways
// expect for two-decimal currencies (149.99 INR -> 14999 paise).
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(minorUnitExponent).Round(0).IntPart()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the value as "<amount> <currency>" for logs and errors.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}
