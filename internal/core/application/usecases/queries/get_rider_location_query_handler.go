package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// GetRiderLocationQueryHandler reads the live position of the rider carrying a
// shop order. The presence index is consulted first for the freshest fix; the
// snapshot mirrored onto the shop order row is the fallback.
type GetRiderLocationQueryHandler struct {
	db  *gorm.DB
	geo ports.GeoIndex
}

// NewGetRiderLocationQueryHandler creates a handler for rider live tracking.
func NewGetRiderLocationQueryHandler(db *gorm.DB, geo ports.GeoIndex) GetRiderLocationQueryHandler {
	return GetRiderLocationQueryHandler{db: db, geo: geo}
}

// Handle returns the rider's last known position for the customer's shop
// order. Shop orders without a rider, and shop orders placed by someone else,
// come back as not found.
func (h GetRiderLocationQueryHandler) Handle(
	ctx context.Context,
	query GetRiderLocationQuery,
) (GetRiderLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderLocationQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT so.rider_id, so.rider_lat, so.rider_lon
		FROM shop_orders so
		JOIN orders o ON o.id = so.order_id
		WHERE so.id = ? AND o.customer_id = ?
	`, query.ShopOrderID().Bytes(), query.CustomerID().Bytes()).Row()

	var (
		riderID  *uuid.UUID
		lat, lon *float64
	)

	err := row.Scan(&riderID, &lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRiderLocationQueryResponse{}, errs.NewObjectNotFoundError(
			"shop order", query.ShopOrderID().String())
	}
	if err != nil {
		return GetRiderLocationQueryResponse{}, err
	}
	if riderID == nil {
		return GetRiderLocationQueryResponse{}, errs.NewObjectNotFoundError(
			"rider location", query.ShopOrderID().String())
	}

	resp := GetRiderLocationQueryResponse{}
	if resp.RiderID, err = kernel.UUIDFromBytes(riderID[:]); err != nil {
		return GetRiderLocationQueryResponse{}, err
	}

	if presence, err := h.geo.GetPresence(ctx, resp.RiderID); err == nil {
		if loc := presence.Location(); loc != nil {
			updatedAt := presence.UpdatedAt()
			resp.Latitude = loc.Latitude()
			resp.Longitude = loc.Longitude()
			resp.Online = presence.IsOnline()
			resp.UpdatedAt = &updatedAt
			return resp, nil
		}
	}

	if lat == nil || lon == nil {
		return GetRiderLocationQueryResponse{}, errs.NewObjectNotFoundError(
			"rider location", query.ShopOrderID().String())
	}
	resp.Latitude = *lat
	resp.Longitude = *lon

	return resp, nil
}
