// Package orderrepo persists the order aggregate: the orders row, one
// shop_orders row per fulfilling shop, and the immutable shop_order_items
// snapshots. Shop orders carry an optimistic-lock version so concurrent status
// moves, rider heartbeats, and the expiry sweep never silently overwrite each
// other.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

// OrderDTO is the database representation of the order aggregate root.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index"`
	AddressText    string
	Latitude       float64
	Longitude      float64
	PaymentMethod  string
	PaymentSettled bool
	PaymentRef     string `gorm:"index"`
	TotalAmount    int64
	OrderedAt      time.Time

	ShopOrders []ShopOrderDTO `gorm:"foreignKey:OrderID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ShopOrderDTO is the database representation of one shop's portion of an
// order, including its delivery state and one-time code.
type ShopOrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	ShopID  uuid.UUID `gorm:"type:uuid;index"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`

	Subtotal int64
	Status   int `gorm:"index"`

	RiderID      *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentID *uuid.UUID `gorm:"type:uuid"`
	RiderLat     *float64
	RiderLon     *float64

	DeliveryCode  string
	CodeExpiresAt *time.Time

	DeliveredAt *time.Time
	DeliveredBy *uuid.UUID `gorm:"type:uuid;index"`

	Version int

	Items []ShopOrderItemDTO `gorm:"foreignKey:ShopOrderID"`
}

// TableName overrides GORM's default naming to use "shop_orders".
func (ShopOrderDTO) TableName() string {
	return "shop_orders"
}

// ShopOrderItemDTO is a purchased line-item snapshot. Items never change after
// the order is placed.
type ShopOrderItemDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ShopOrderID uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	UnitPrice   int64
	Quantity    int
}

// TableName overrides GORM's default naming to use "shop_order_items".
func (ShopOrderItemDTO) TableName() string {
	return "shop_order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	shopOrders := make([]ShopOrderDTO, 0, len(aggregate.ShopOrders()))
	for _, so := range aggregate.ShopOrders() {
		shopOrders = append(shopOrders, shopOrderFromDomain(aggregate.ID(), so))
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		AddressText:    aggregate.Address().Text(),
		Latitude:       aggregate.Address().Latitude(),
		Longitude:      aggregate.Address().Longitude(),
		PaymentMethod:  aggregate.PaymentMethod().String(),
		PaymentSettled: aggregate.IsPaymentSettled(),
		PaymentRef:     aggregate.PaymentRef(),
		TotalAmount:    aggregate.TotalAmount(),
		OrderedAt:      aggregate.OrderedAt(),
		ShopOrders:     shopOrders,
	}
}

func shopOrderFromDomain(orderID kernel.UUID, so *order.ShopOrder) ShopOrderDTO {
	items := make([]ShopOrderItemDTO, 0, len(so.Items()))
	for _, item := range so.Items() {
		items = append(items, ShopOrderItemDTO{
			ShopOrderID: so.ID().Bytes(),
			Name:        item.Name(),
			UnitPrice:   item.UnitPrice(),
			Quantity:    item.Quantity(),
		})
	}

	dto := ShopOrderDTO{
		ID:            so.ID().Bytes(),
		OrderID:       orderID.Bytes(),
		ShopID:        so.ShopID().Bytes(),
		OwnerID:       so.OwnerID().Bytes(),
		Subtotal:      so.Subtotal(),
		Status:        int(so.Status()),
		DeliveryCode:  so.DeliveryCode(),
		CodeExpiresAt: so.CodeExpiresAt(),
		DeliveredAt:   so.DeliveredAt(),
		Version:       so.Version(),
		Items:         items,
	}

	if id := so.Rider(); id != nil {
		raw := id.Bytes()
		dto.RiderID = &raw
	}
	if id := so.Assignment(); id != nil {
		raw := id.Bytes()
		dto.AssignmentID = &raw
	}
	if id := so.DeliveredBy(); id != nil {
		raw := id.Bytes()
		dto.DeliveredBy = &raw
	}
	if loc := so.RiderLocation(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.RiderLat = &lat
		dto.RiderLon = &lon
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate, reconstructing every
// shop order and its line items via the restore constructors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	shopOrders := make([]*order.ShopOrder, 0, len(dto.ShopOrders))
	for _, soDTO := range dto.ShopOrders {
		so, soErr := shopOrderToDomain(soDTO)
		if soErr != nil {
			return nil, soErr
		}
		shopOrders = append(shopOrders, so)
	}

	return order.RestoreOrder(
		id,
		customerID,
		order.RestoreAddress(dto.AddressText, dto.Latitude, dto.Longitude),
		paymentMethod,
		dto.PaymentSettled,
		dto.PaymentRef,
		dto.TotalAmount,
		dto.OrderedAt,
		shopOrders,
	)
}

func shopOrderToDomain(dto ShopOrderDTO) (*order.ShopOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := optionalUUID(dto.RiderID)
	if err != nil {
		return nil, err
	}

	assignmentID, err := optionalUUID(dto.AssignmentID)
	if err != nil {
		return nil, err
	}

	deliveredBy, err := optionalUUID(dto.DeliveredBy)
	if err != nil {
		return nil, err
	}

	var riderLocation *kernel.GeoPoint
	if dto.RiderLat != nil && dto.RiderLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.RiderLat, *dto.RiderLon)
		if pointErr != nil {
			return nil, pointErr
		}
		riderLocation = &point
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreShopOrder(
		id,
		shopID,
		ownerID,
		items,
		dto.Subtotal,
		order.Status(dto.Status),
		riderID,
		assignmentID,
		riderLocation,
		dto.DeliveryCode,
		dto.CodeExpiresAt,
		dto.DeliveredAt,
		deliveredBy,
		dto.Version,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
