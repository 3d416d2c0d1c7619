package commands

import (
	"errors"

	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)

	// ErrPaymentNotCaptured is returned when the gateway reports the payment in
	// any status other than captured.
	ErrPaymentNotCaptured = errors.New("payment is not captured")
)

// ConfirmPaymentCommand represents a request to settle an online order after
// the customer completed checkout at the payment gateway.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentRef string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm an online payment by
// the gateway's payment identifier.
func NewConfirmPaymentCommand(paymentRef string) (ConfirmPaymentCommand, error) {
	if paymentRef == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("payment ref")
	}

	return ConfirmPaymentCommand{
		paymentRef: paymentRef,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentRef returns the gateway's payment identifier.
func (c ConfirmPaymentCommand) PaymentRef() string {
	return c.paymentRef
}
