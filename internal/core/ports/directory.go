package ports

import (
	"context"

	"foodflow/internal/core/domain/model/kernel"
)

// Shop is the directory's view of a shop: enough to decompose a cart and to
// anchor rider matching at the pickup point.
type Shop struct {
	ID      kernel.UUID
	OwnerID kernel.UUID
	Name    string

	// Latitude/Longitude locate the shop for pickup-anchored matching.
	Latitude  float64
	Longitude float64
}

// CustomerContact is the directory's view of a customer for notifications.
type CustomerContact struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// Directory defines the read-only contract for shop and customer master data.
// The dispatch core references shops and customers by ID; their records live
// outside this module's aggregates.
type Directory interface {
	// GetShop retrieves a shop by its identifier.
	GetShop(ctx context.Context, id kernel.UUID) (Shop, error)

	// GetCustomerContact retrieves a customer's notification contact.
	GetCustomerContact(ctx context.Context, id kernel.UUID) (CustomerContact, error)
}
