// Package postmarkmail delivers one-time delivery codes to customers over
// Postmark transactional email.
package postmarkmail

import (
	"context"
	"fmt"

	"github.com/keighl/postmark"

	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// PostmarkCodeSender implements the CodeSender port on the Postmark API.
type PostmarkCodeSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkCodeSender creates a sender using the given server token and
// sender address.
func NewPostmarkCodeSender(serverToken string, from string) *PostmarkCodeSender {
	return &PostmarkCodeSender{
		client: postmark.NewClient(serverToken, ""),
		from:   from,
	}
}

var _ ports.CodeSender = (*PostmarkCodeSender)(nil)

// SendOneTimeCode emails the delivery code to the customer.
func (s *PostmarkCodeSender) SendOneTimeCode(_ context.Context, email string, name string, code string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	_, err := s.client.SendEmail(postmark.Email{
		From:    s.from,
		To:      email,
		Subject: "Your delivery code",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour delivery code is %s. Share it with your rider to receive your order. "+
				"The code expires in 5 minutes.\n", name, code),
	})
	if err != nil {
		return errs.NewUpstreamFailureError("postmark", err)
	}

	return nil
}
