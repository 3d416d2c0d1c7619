package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
)

// GetCurrentDeliveryQueryHandler reads a rider's in-flight delivery.
type GetCurrentDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentDeliveryQueryHandler creates a handler for a rider's active delivery.
func NewGetCurrentDeliveryQueryHandler(db *gorm.DB) GetCurrentDeliveryQueryHandler {
	return GetCurrentDeliveryQueryHandler{db: db}
}

// Handle returns the delivery the rider is carrying, or not found when the
// rider has nothing in flight.
func (h GetCurrentDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentDeliveryQuery,
) (GetCurrentDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			da.id,
			da.shop_order_id,
			da.shop_id,
			s.name,
			o.customer_id,
			so.subtotal,
			o.address_text,
			o.latitude,
			o.longitude,
			da.resolved_at
		FROM delivery_assignments da
		JOIN shop_orders so ON so.id = da.shop_order_id
		JOIN orders o ON o.id = so.order_id
		JOIN shops s ON s.id = da.shop_id
		WHERE da.status = ? AND da.accepted_by = ?
	`, int(assignment.StatusAssigned), query.RiderID().Bytes()).Row()

	var (
		assignmentID, shopOrderID, shopID, customerID uuid.UUID
		resp                                          GetCurrentDeliveryQueryResponse
	)

	err := row.Scan(
		&assignmentID,
		&shopOrderID,
		&shopID,
		&resp.ShopName,
		&customerID,
		&resp.Subtotal,
		&resp.AddressText,
		&resp.Latitude,
		&resp.Longitude,
		&resp.AcceptedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCurrentDeliveryQueryResponse{}, errs.NewObjectNotFoundError(
			"current delivery", query.RiderID().String())
	}
	if err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}

	if resp.AssignmentID, err = kernel.UUIDFromBytes(assignmentID[:]); err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}
	if resp.ShopOrderID, err = kernel.UUIDFromBytes(shopOrderID[:]); err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}
	if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetCurrentDeliveryQueryResponse{}, err
	}

	return resp, nil
}
