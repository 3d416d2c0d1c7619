package orderrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its shop orders and line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves changes to an existing order. The orders row carries only
// payment state that can change after placement; each shop order row is
// written with a version check so a stale aggregate cannot overwrite a
// concurrent change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("payment_settled", "payment_ref").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	for _, so := range dto.ShopOrders {
		result = r.db.WithContext(ctx).Model(&ShopOrderDTO{}).
			Where("id = ? AND version = ?", so.ID, so.Version).
			Updates(map[string]any{
				"status":          so.Status,
				"rider_id":        so.RiderID,
				"assignment_id":   so.AssignmentID,
				"rider_lat":       so.RiderLat,
				"rider_lon":       so.RiderLon,
				"delivery_code":   so.DeliveryCode,
				"code_expires_at": so.CodeExpiresAt,
				"delivered_at":    so.DeliveredAt,
				"delivered_by":    so.DeliveredBy,
				"version":         gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrConcurrentUpdate
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its shop orders and line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("ShopOrders.Items").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByShopOrder retrieves the order aggregate owning the given shop order.
func (r *GormOrderRepository) GetByShopOrder(ctx context.Context, shopOrderID kernel.UUID) (*order.Order, error) {
	if err := shopOrderID.Validate(); err != nil {
		return nil, err
	}

	var orderID uuid.UUID
	err := r.db.WithContext(ctx).Model(&ShopOrderDTO{}).
		Select("order_id").
		Where("id = ?", shopOrderID.Bytes()).
		Take(&orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop order", shopOrderID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// GetByPaymentRef retrieves the order carrying the given payment reference.
func (r *GormOrderRepository) GetByPaymentRef(ctx context.Context, ref string) (*order.Order, error) {
	if ref == "" {
		return nil, errs.NewValueIsRequiredError("payment ref")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("ShopOrders.Items").
		First(&dto, "payment_ref = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", ref)
		}
		return nil, err
	}

	return toDomain(dto)
}
