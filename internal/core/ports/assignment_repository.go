package ports

import (
	"context"
	"time"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for the delivery
// assignment ledger. Beyond plain aggregate storage it carries the two
// concurrency-sensitive operations of the dispatch flow: the atomic accept and
// the expiry sweep. Both are single conditional statements so concurrent
// callers race safely inside the database.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// Accept atomically claims a broadcasted assignment for a rider and returns
	// the updated aggregate. Exactly one concurrent caller succeeds per
	// assignment. Returns assignment.ErrAlreadyResolved when the assignment is
	// no longer broadcasted, assignment.ErrRiderNotCandidate when the rider was
	// not part of the broadcast, and assignment.ErrRiderBusy when the rider
	// already holds a non-terminal assignment.
	Accept(ctx context.Context, id kernel.UUID, riderID kernel.UUID, now time.Time) (*assignment.Assignment, error)

	// GetActiveByRider retrieves the rider's single non-terminal assignment.
	// Returns a not-found error when the rider holds no live job.
	GetActiveByRider(ctx context.Context, riderID kernel.UUID) (*assignment.Assignment, error)

	// GetActiveRiders lists riders currently holding a non-terminal assignment.
	// The candidate selector excludes them from new broadcasts.
	GetActiveRiders(ctx context.Context) ([]kernel.UUID, error)

	// ExpireBroadcastedBefore closes every broadcast opened before the cutoff
	// that no rider accepted, and returns the expired assignments. Runs as one
	// conditional statement so it races safely with concurrent accepts.
	ExpireBroadcastedBefore(ctx context.Context, cutoff time.Time, now time.Time) ([]*assignment.Assignment, error)
}
