package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment to the ledger.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing assignment.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":      dto.Status,
			"accepted_by": dto.AcceptedBy,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Accept atomically claims a broadcasted assignment for a rider. The status
// guard in the WHERE clause lets exactly one concurrent caller through; the
// partial unique index on accepted_by rejects riders already carrying a job.
func (r *GormAssignmentRepository) Accept(
	ctx context.Context,
	id kernel.UUID,
	riderID kernel.UUID,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if aggregate.Status() != assignment.StatusBroadcasted {
		return nil, assignment.ErrAlreadyResolved
	}
	if !aggregate.IsCandidate(riderID) {
		return nil, assignment.ErrRiderNotCandidate
	}

	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(assignment.StatusBroadcasted)).
		Updates(map[string]any{
			"status":      int(assignment.StatusAssigned),
			"accepted_by": riderID.Bytes(),
			"resolved_at": now,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, assignment.ErrRiderBusy
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// someone else won between the read and the update
		return nil, assignment.ErrAlreadyResolved
	}

	if err = aggregate.Accept(riderID, now); err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// GetActiveByRider retrieves the rider's single accepted, not yet completed
// assignment.
func (r *GormAssignmentRepository) GetActiveByRider(
	ctx context.Context,
	riderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "accepted_by = ? AND status = ?",
			riderID.Bytes(), int(assignment.StatusAssigned)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active assignment", riderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveRiders lists riders currently holding an accepted assignment.
func (r *GormAssignmentRepository) GetActiveRiders(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("status = ? AND accepted_by IS NOT NULL", int(assignment.StatusAssigned)).
		Pluck("accepted_by", &raw).Error
	if err != nil {
		return nil, err
	}

	riders := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		riders = append(riders, riderID)
	}

	return riders, nil
}

// ExpireBroadcastedBefore closes every unaccepted broadcast opened before the
// cutoff in one conditional statement, so it races safely with concurrent
// accepts, and returns the expired assignments.
func (r *GormAssignmentRepository) ExpireBroadcastedBefore(
	ctx context.Context,
	cutoff time.Time,
	now time.Time,
) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).Raw(`
		UPDATE delivery_assignments
		SET status = ?, resolved_at = ?
		WHERE status = ? AND broadcast_at < ?
		RETURNING *
	`, int(assignment.StatusExpired), now,
		int(assignment.StatusBroadcasted), cutoff).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	expired := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		expired = append(expired, aggregate)
	}

	return expired, nil
}
