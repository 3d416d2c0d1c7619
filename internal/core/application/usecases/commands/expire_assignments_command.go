package commands

import (
	"errors"
	"fmt"
	"time"

	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
)

// ExpireAssignmentsCommand represents one sweep over broadcasts that stayed
// unaccepted longer than the broadcast window.
type ExpireAssignmentsCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

// NewExpireAssignmentsCommand creates a command to expire broadcasts older than
// the given window.
func NewExpireAssignmentsCommand(window time.Duration) (ExpireAssignmentsCommand, error) {
	if window <= 0 {
		return ExpireAssignmentsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"broadcast window", fmt.Errorf("%s is not positive", window))
	}

	return ExpireAssignmentsCommand{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}

// Window returns how long a broadcast stays open before expiring.
func (c ExpireAssignmentsCommand) Window() time.Duration {
	return c.window
}
