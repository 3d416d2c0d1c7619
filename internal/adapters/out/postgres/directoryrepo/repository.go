// Package directoryrepo reads shop and customer master data. The dispatch core
// references shops and customers by ID only; their records are managed outside
// this module, so the directory is read-only and never joins a unit of work.
package directoryrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// ShopDTO is the database representation of a shop's directory record.
type ShopDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "shops".
func (ShopDTO) TableName() string {
	return "shops"
}

// UserDTO is the database representation of a user's directory record.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// GormDirectory implements the Directory port using GORM.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a read-only directory over shop and user records.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// GetShop retrieves a shop by its identifier.
func (d *GormDirectory) GetShop(ctx context.Context, id kernel.UUID) (ports.Shop, error) {
	if err := id.Validate(); err != nil {
		return ports.Shop{}, err
	}

	var dto ShopDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Shop{}, errs.NewObjectNotFoundError("shop", id.String())
		}
		return ports.Shop{}, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Shop{}, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.Shop{}, err
	}

	return ports.Shop{
		ID:        shopID,
		OwnerID:   ownerID,
		Name:      dto.Name,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}, nil
}

// GetCustomerContact retrieves a customer's notification contact.
func (d *GormDirectory) GetCustomerContact(ctx context.Context, id kernel.UUID) (ports.CustomerContact, error) {
	if err := id.Validate(); err != nil {
		return ports.CustomerContact{}, err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CustomerContact{}, errs.NewObjectNotFoundError("customer", id.String())
		}
		return ports.CustomerContact{}, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.CustomerContact{}, err
	}

	return ports.CustomerContact{
		ID:    customerID,
		Name:  dto.Name,
		Email: dto.Email,
	}, nil
}
