package ports

import (
	"context"
	"errors"
)

var (
	// ErrGatewayUnavailable reports a transport failure while talking to the
	// payment gateway. No payment state changed; the caller may retry.
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")

	// ErrGatewayDisabled reports that online payments are switched off in
	// configuration.
	ErrGatewayDisabled = errors.New("payment gateway is disabled")
)

// PaymentGateway defines the contract against the external payment provider.
// Amounts cross this boundary in minor currency units (paise for INR), never
// as decimals.
type PaymentGateway interface {
	// CreateRemoteOrder registers a payment intent with the provider and
	// returns the provider's order identifier. The receipt ties the remote
	// order back to ours; notes travel to the provider dashboard verbatim.
	CreateRemoteOrder(ctx context.Context, amountMinorUnits int64, currency string, receipt string, notes map[string]string) (string, error)

	// VerifySignature checks the provider's callback signature over the
	// remote order id and payment id. Comparison is constant-time.
	VerifySignature(externalOrderID, externalPaymentID, signature string) bool
}
