// Package assignmentrepo persists the delivery assignment ledger. The ledger
// is the source of truth for who holds which delivery job: accepting an offer
// is a single conditional update, and a partial unique index on accepted_by
// enforces one live job per rider at the database level.
package assignmentrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
)

// AssignmentDTO is the database representation of a delivery assignment.
// Candidates is a text[] of rider IDs so membership checks run as an ANY()
// predicate inside conditional updates.
type AssignmentDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopOrderID uuid.UUID      `gorm:"type:uuid;index"`
	ShopID      uuid.UUID      `gorm:"type:uuid;index"`
	Candidates  pq.StringArray `gorm:"type:text[]"`
	Status      int            `gorm:"index"`
	AcceptedBy  *uuid.UUID     `gorm:"type:uuid"`
	BroadcastAt time.Time      `gorm:"index"`
	ResolvedAt  *time.Time
}

// TableName overrides GORM's default naming to use "delivery_assignments".
func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

// fromDomain converts an assignment aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	candidates := make(pq.StringArray, 0, len(aggregate.Candidates()))
	for _, c := range aggregate.Candidates() {
		candidates = append(candidates, c.String())
	}

	dto := AssignmentDTO{
		ID:          aggregate.ID().Bytes(),
		ShopOrderID: aggregate.ShopOrderID().Bytes(),
		ShopID:      aggregate.ShopID().Bytes(),
		Candidates:  candidates,
		Status:      int(aggregate.Status()),
		BroadcastAt: aggregate.BroadcastAt(),
		ResolvedAt:  aggregate.ResolvedAt(),
	}

	if id := aggregate.AcceptedBy(); id != nil {
		raw := id.Bytes()
		dto.AcceptedBy = &raw
	}

	return dto
}

// toDomain converts a database DTO to an assignment aggregate.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopOrderID, err := kernel.UUIDFromBytes(dto.ShopOrderID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	candidates := make([]kernel.UUID, 0, len(dto.Candidates))
	for _, raw := range dto.Candidates {
		c, cErr := kernel.UUIDFromString(raw)
		if cErr != nil {
			return nil, cErr
		}
		candidates = append(candidates, c)
	}

	var acceptedBy *kernel.UUID
	if dto.AcceptedBy != nil {
		riderID, riderErr := kernel.UUIDFromBytes(dto.AcceptedBy[:])
		if riderErr != nil {
			return nil, riderErr
		}
		acceptedBy = &riderID
	}

	return assignment.RestoreAssignment(
		id,
		shopOrderID,
		shopID,
		candidates,
		assignment.Status(dto.Status),
		acceptedBy,
		dto.BroadcastAt,
		dto.ResolvedAt,
	)
}
