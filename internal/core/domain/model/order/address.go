package order

import (
	"errors"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an improperly initialized Address.
var ErrAddressIsNotConstructed = errors.New(
	"Address must be created via NewAddress or RestoreAddress constructor")

// Address is the delivery destination: free text plus WGS84 coordinates.
//
// NewAddress requires finite, in-range coordinates, so freshly placed orders are
// always matchable. RestoreAddress accepts whatever was persisted; Point then
// reports whether the coordinates are usable, and matching degrades silently
// when they are not.
type Address struct { //nolint:recvcheck //using for validation
	text      string
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewAddress creates a validated delivery address. Text is required and the
// coordinates must form a valid geo point.
func NewAddress(text string, latitude float64, longitude float64) (Address, error) {
	if text == "" {
		return Address{}, errs.NewValueIsRequiredError("address text")
	}

	if _, err := kernel.NewGeoPoint(latitude, longitude); err != nil {
		return Address{}, err
	}

	return Address{
		text:      text,
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreAddress reconstructs an address from persistence without coordinate
// validation. Orders stored before coordinate validation existed may carry
// unusable points; Point surfaces that.
func RestoreAddress(text string, latitude float64, longitude float64) Address {
	return Address{
		text:      text,
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the address was created through a constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Text returns the free-form address text.
func (a Address) Text() string {
	return a.text
}

// Latitude returns the stored latitude in degrees.
func (a Address) Latitude() float64 {
	return a.latitude
}

// Longitude returns the stored longitude in degrees.
func (a Address) Longitude() float64 {
	return a.longitude
}

// Point returns the destination as a validated GeoPoint. An error means the
// stored coordinates are not usable for matching; callers treat that as "no
// destination", not as a failure of the surrounding operation.
func (a Address) Point() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(a.latitude, a.longitude)
}
