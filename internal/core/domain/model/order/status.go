package order

import (
	"fmt"

	"foodflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a ShopOrder.
//
// State transitions:
//
//	Pending ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │               │
//	   └────────────┴───────────────┴──> Cancelled
//
// Transitions only move forward; Cancelled is reachable from any non-terminal
// state; Delivered is set exclusively by the delivery completion gate after a
// one-time-code check, never through TransitionTo.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status at order placement, awaiting the shop owner.
	StatusPending

	// StatusPreparing indicates the shop has started preparing the order.
	StatusPreparing

	// StatusOutForDelivery indicates the order left the shop and is dispatch-ready.
	// Entering this status triggers rider matching when no assignment exists yet.
	StatusOutForDelivery

	// StatusDelivered is the terminal success status, set by the completion gate.
	StatusDelivered

	// StatusCancelled is the terminal cancellation status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusPreparing:      "preparing",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "pending",
		StatusPreparing:      "preparing",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// statusRank orders the forward progression. Cancelled and Unknown carry no rank.
func (s Status) rank() (int, bool) {
	switch s {
	case StatusPending:
		return 1, true
	case StatusPreparing:
		return 2, true
	case StatusOutForDelivery:
		return 3, true
	case StatusDelivered:
		return 4, true
	default:
		return 0, false
	}
}

// StatusFromString parses the wire form ("pending", "preparing", ...) used in
// events and API payloads. Returns a validation error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo validates a forward, owner-driven status move and returns the new
// status. Backward moves, no-op moves, moves out of a terminal state, and moves
// into Delivered or Cancelled are rejected (those two have dedicated paths).
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}

	if next == StatusDelivered || next == StatusCancelled {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot be reached through a regular transition", next),
		)
	}

	fromRank, ok := s.rank()
	if !ok {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to transition from", s),
		)
	}

	toRank, _ := next.rank()
	if toRank <= fromRank {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot move backward from %s to %s", s, next),
		)
	}

	return next, nil
}

// Cancel transitions the status to Cancelled. Allowed from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}
	if s.IsTerminal() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and cannot be cancelled", s),
		)
	}

	return StatusCancelled, nil
}

// deliver transitions the status to Delivered. Only the completion gate path
// (ShopOrder.VerifyDeliveryCode) calls this, and only from OutForDelivery.
func (s Status) deliver() (Status, error) {
	if s != StatusOutForDelivery {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver from", s),
		)
	}

	return StatusDelivered, nil
}
