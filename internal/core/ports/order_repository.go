// Package ports defines the contracts between the application core and
// infrastructure: repositories, the transaction boundary, the geo index, the
// event bus, and outbound gateways. Adapters implement these interfaces,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
)

// ErrConcurrentUpdate is returned by Update when the aggregate changed between
// load and save. Callers reload and retry or surface a conflict.
var ErrConcurrentUpdate = errors.New("aggregate was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with all its shop orders and items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Shop-order rows
	// are written with an optimistic version check; a version mismatch returns
	// ErrConcurrentUpdate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including all
	// shop orders and line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByShopOrder retrieves the order aggregate that owns the given shop order.
	GetByShopOrder(ctx context.Context, shopOrderID kernel.UUID) (*order.Order, error)

	// GetByPaymentRef retrieves the order carrying the given external payment
	// reference. Used by the payment confirmation flow.
	GetByPaymentRef(ctx context.Context, ref string) (*order.Order, error)
}
