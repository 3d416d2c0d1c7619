package ports

import (
	"context"
)

// PaymentStatusCaptured is the gateway status confirming a settled payment.
const PaymentStatusCaptured = "captured"

// PaymentIntent is a gateway-side order created before the customer pays.
type PaymentIntent struct {
	// Ref is the gateway's identifier for the intent, stored on the order.
	Ref string

	// Amount is the amount in minor currency units.
	Amount int64

	// Currency is the ISO currency code.
	Currency string
}

// Payment is the gateway's view of an executed payment.
type Payment struct {
	// Ref is the gateway's payment identifier.
	Ref string

	// IntentRef is the intent the payment settles.
	IntentRef string

	// Status is the gateway status string; PaymentStatusCaptured means settled.
	Status string
}

// PaymentGateway defines the contract for the external payment provider.
// Failures surface as errs.UpstreamFailureError.
type PaymentGateway interface {
	// CreateIntent opens a payment intent for the given amount.
	CreateIntent(ctx context.Context, amount int64, currency string, receipt string) (PaymentIntent, error)

	// FetchPayment retrieves a payment by the gateway's payment identifier.
	FetchPayment(ctx context.Context, paymentRef string) (Payment, error)
}
