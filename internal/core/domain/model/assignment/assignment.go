package assignment

import (
	"errors"
	"fmt"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not created
	// through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"Assignment must be created via NewAssignment or RestoreAssignment constructor")

	// ErrAlreadyResolved is returned when accepting an assignment that has already
	// been taken by another rider, expired, or been cancelled. Exactly one accept
	// attempt per assignment ever succeeds.
	ErrAlreadyResolved = errors.New("assignment is already resolved")

	// ErrRiderBusy is returned when the accepting rider already holds a live
	// assignment. A rider carries at most one active job at a time.
	ErrRiderBusy = errors.New("rider already has an active assignment")

	// ErrRiderNotCandidate is returned when the accepting rider was not part of
	// the broadcast candidate set.
	ErrRiderNotCandidate = errors.New("rider is not a candidate for this assignment")
)

// Assignment is the ledger entry for one delivery offer: broadcast to a set of
// candidate riders, claimed by exactly one of them, and closed by completion,
// cancellation, or expiry.
//
// Invariants:
//   - Candidates are fixed at broadcast time.
//   - AcceptedBy is set exactly once, by the first successful Accept, and only
//     to a rider from the candidate set.
//   - Terminal statuses release the rider's active-job slot; the rider-busy rule
//     counts only non-terminal assignments.
type Assignment struct {
	id          kernel.UUID
	shopOrderID kernel.UUID
	shopID      kernel.UUID

	candidates []kernel.UUID

	status     Status
	acceptedBy *kernel.UUID

	broadcastAt time.Time
	resolvedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewAssignment opens a broadcast offer for a shop order to the given candidate
// riders. The candidate set must be non-empty; callers handle the no-riders case
// before creating an assignment.
func NewAssignment(
	id kernel.UUID,
	shopOrderID kernel.UUID,
	shopID kernel.UUID,
	candidates []kernel.UUID,
	broadcastAt time.Time,
) (*Assignment, error) {
	if len(candidates) == 0 {
		return nil, errs.NewValueIsRequiredError("candidates")
	}
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("candidate id", err)
		}
	}

	a := &Assignment{
		candidates:  append([]kernel.UUID(nil), candidates...),
		status:      StatusBroadcasted,
		broadcastAt: broadcastAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("assignment id", id, &a.id),
		validateID("shop order id", shopOrderID, &a.shopOrderID),
		validateID("shop id", shopID, &a.shopID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	shopOrderID kernel.UUID,
	shopID kernel.UUID,
	candidates []kernel.UUID,
	status Status,
	acceptedBy *kernel.UUID,
	broadcastAt time.Time,
	resolvedAt *time.Time,
) (*Assignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	a := &Assignment{
		candidates:  append([]kernel.UUID(nil), candidates...),
		status:      status,
		acceptedBy:  acceptedBy,
		broadcastAt: broadcastAt,
		resolvedAt:  resolvedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("assignment id", id, &a.id),
		validateID("shop order id", shopOrderID, &a.shopOrderID),
		validateID("shop id", shopID, &a.shopID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// ShopOrderID returns the shop order this assignment delivers.
func (a *Assignment) ShopOrderID() kernel.UUID {
	return a.shopOrderID
}

// ShopID returns the pickup shop's identifier.
func (a *Assignment) ShopID() kernel.UUID {
	return a.shopID
}

// Candidates returns a copy of the broadcast candidate set.
func (a *Assignment) Candidates() []kernel.UUID {
	return append([]kernel.UUID(nil), a.candidates...)
}

// Status returns the current lifecycle status.
func (a *Assignment) Status() Status {
	return a.status
}

// AcceptedBy returns the winning rider's ID, or nil while still broadcasted.
func (a *Assignment) AcceptedBy() *kernel.UUID {
	return a.acceptedBy
}

// BroadcastAt returns when the offer was opened.
func (a *Assignment) BroadcastAt() time.Time {
	return a.broadcastAt
}

// ResolvedAt returns when the assignment was accepted or closed, or nil while
// still broadcasted.
func (a *Assignment) ResolvedAt() *time.Time {
	return a.resolvedAt
}

// IsCandidate reports whether the rider was part of the broadcast.
func (a *Assignment) IsCandidate(riderID kernel.UUID) bool {
	for _, c := range a.candidates {
		if c.IsEqual(riderID) {
			return true
		}
	}
	return false
}

// Accept claims the offer for a rider. Only a broadcasted assignment can be
// accepted, and only by a candidate. The persistence layer enforces the same
// rules again under concurrency; this method covers the single-writer path and
// keeps the aggregate consistent in memory.
func (a *Assignment) Accept(riderID kernel.UUID, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if a.status != StatusBroadcasted {
		return ErrAlreadyResolved
	}
	if !a.IsCandidate(riderID) {
		return ErrRiderNotCandidate
	}

	resolvedAt := now
	a.status = StatusAssigned
	a.acceptedBy = &riderID
	a.resolvedAt = &resolvedAt
	return nil
}

// Complete closes an assigned job after the delivery completion gate passes.
func (a *Assignment) Complete(now time.Time) error {
	if a.status != StatusAssigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete from", a.status))
	}

	resolvedAt := now
	a.status = StatusCompleted
	a.resolvedAt = &resolvedAt
	return nil
}

// Cancel closes the assignment because its shop order was cancelled. Allowed
// from any non-terminal status.
func (a *Assignment) Cancel(now time.Time) error {
	if a.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is terminal and cannot be cancelled", a.status))
	}

	resolvedAt := now
	a.status = StatusCancelled
	a.resolvedAt = &resolvedAt
	return nil
}

// Expire closes a broadcast no rider accepted within the broadcast window.
func (a *Assignment) Expire(now time.Time) error {
	if a.status != StatusBroadcasted {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to expire from", a.status))
	}

	resolvedAt := now
	a.status = StatusExpired
	a.resolvedAt = &resolvedAt
	return nil
}

func validateID(name string, id kernel.UUID, target *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*target = id
	return nil
}
