package ports

import (
	"context"
)

// CodeSender defines the contract for delivering one-time codes to customers.
// A send failure does not invalidate the stored code; the issue flow reports
// delivery as delayed and the code can be reissued.
type CodeSender interface {
	// SendOneTimeCode delivers the code to the customer's address.
	SendOneTimeCode(ctx context.Context, email string, name string, code string) error
}
