package assignment

import (
	"fmt"

	"foodflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery Assignment.
//
// State transitions:
//
//	Broadcasted ──> Assigned ──> Completed
//	     │              │
//	     │              └──> Cancelled
//	     ├──> Cancelled
//	     └──> Expired
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusBroadcasted means the offer is open to every candidate rider.
	StatusBroadcasted

	// StatusAssigned means exactly one rider accepted; the rider holds this as
	// their single active job until completion or cancellation.
	StatusAssigned

	// StatusCompleted is the terminal success status, reached when the delivery
	// completion gate confirms the one-time code.
	StatusCompleted

	// StatusCancelled is the terminal status for assignments whose shop order was
	// cancelled.
	StatusCancelled

	// StatusExpired is the terminal status for broadcasts no rider accepted
	// within the broadcast window.
	StatusExpired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusBroadcasted: "broadcasted",
		StatusAssigned:    "assigned",
		StatusCompleted:   "completed",
		StatusCancelled:   "cancelled",
		StatusExpired:     "expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusBroadcasted: "broadcasted",
		StatusAssigned:    "assigned",
		StatusCompleted:   "completed",
		StatusCancelled:   "cancelled",
		StatusExpired:     "expired",
	}
}

// TerminalStatuses lists the statuses that release the rider's active-job slot.
// The persistence layer uses this set for the uniqueness rule that keeps a
// rider on at most one live assignment.
func TerminalStatuses() []Status {
	return []Status{StatusCompleted, StatusCancelled, StatusExpired}
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid assignment status", s))
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
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}
