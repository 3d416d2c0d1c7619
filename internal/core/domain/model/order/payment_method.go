package order

import (
	"fmt"

	"foodflow/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCashOnDelivery settles at the door; the order is visible to
	// shop owners immediately after placement.
	PaymentMethodCashOnDelivery

	// PaymentMethodOnline settles through the payment gateway; the order becomes
	// visible to shop owners only after the gateway confirms capture.
	PaymentMethodOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCashOnDelivery: "cod",
		PaymentMethodOnline:         "online",
	}
}

// PaymentMethodFromString parses the wire form ("cod" or "online").
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the method is one of the defined payment methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire form, or "unknown" for invalid values.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
