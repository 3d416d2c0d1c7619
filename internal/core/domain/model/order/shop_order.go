package order

import (
	"errors"
	"fmt"
	"time"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/pkg/errs"
	"foodflow/internal/pkg/guard"
)

// deliveryCodeTTL is how long a delivery one-time code stays valid after issue.
const deliveryCodeTTL = 5 * time.Minute

var (
	// ErrShopOrderIsNotConstructed is returned when a ShopOrder was not created
	// through NewShopOrder or RestoreShopOrder.
	ErrShopOrderIsNotConstructed = errors.New(
		"ShopOrder must be created via NewShopOrder or RestoreShopOrder constructor")

	// ErrAssignmentAlreadyAttached is returned when binding a second assignment to
	// a shop order that already carries one.
	ErrAssignmentAlreadyAttached = errors.New("shop order already has an assignment")

	// ErrNoAssignmentAttached is returned when an operation requires a bound
	// assignment and none is present.
	ErrNoAssignmentAttached = errors.New("shop order has no assignment")

	// ErrNoRiderAssigned is returned when an operation requires an assigned rider
	// and none is present.
	ErrNoRiderAssigned = errors.New("shop order has no assigned rider")

	// ErrCodeInvalidOrExpired is returned when verifying a delivery code that is
	// absent, mismatched, or past its expiry.
	ErrCodeInvalidOrExpired = errors.New("delivery code is invalid or expired")
)

// ShopOrder is the portion of an Order fulfilled by one shop: an independent unit
// of status tracking and delivery assignment, embedded in the Order aggregate but
// carrying its own identity, optimistic-lock version, and lifecycle.
//
// Invariants:
//   - At most one assignment reference at any time.
//   - A rider reference exists only while the order is out for delivery and not
//     yet completed; completion clears it but retains deliveredBy.
//   - Line items are immutable snapshots; the subtotal equals their sum and never
//     changes after creation.
type ShopOrder struct {
	id      kernel.UUID
	shopID  kernel.UUID
	ownerID kernel.UUID

	items    []LineItem
	subtotal int64

	status        Status
	riderID       *kernel.UUID
	assignmentID  *kernel.UUID
	riderLocation *kernel.GeoPoint

	deliveryCode  string
	codeExpiresAt *time.Time

	deliveredAt *time.Time
	deliveredBy *kernel.UUID

	// version supports optimistic concurrency control in the persistence layer.
	version int

	guard guard.ConstructorGuard
}

// NewShopOrder creates a pending shop order from line-item snapshots.
// The subtotal is computed from the items and fixed at creation.
func NewShopOrder(id kernel.UUID, shopID kernel.UUID, ownerID kernel.UUID, items []LineItem) (*ShopOrder, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	var subtotal int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		subtotal += item.Total()
	}

	so := &ShopOrder{
		items:    append([]LineItem(nil), items...),
		subtotal: subtotal,
		status:   StatusPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("shop order id", id, &so.id),
		validateID("shop id", shopID, &so.shopID),
		validateID("owner id", ownerID, &so.ownerID),
	); err != nil {
		return nil, err
	}

	return so, nil
}

// RestoreShopOrder reconstructs a shop order from persistence, including its
// delivery state, code, and optimistic-lock version.
func RestoreShopOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	ownerID kernel.UUID,
	items []LineItem,
	subtotal int64,
	status Status,
	riderID *kernel.UUID,
	assignmentID *kernel.UUID,
	riderLocation *kernel.GeoPoint,
	deliveryCode string,
	codeExpiresAt *time.Time,
	deliveredAt *time.Time,
	deliveredBy *kernel.UUID,
	version int,
) (*ShopOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	so := &ShopOrder{
		items:         append([]LineItem(nil), items...),
		subtotal:      subtotal,
		status:        status,
		riderID:       riderID,
		assignmentID:  assignmentID,
		riderLocation: riderLocation,
		deliveryCode:  deliveryCode,
		codeExpiresAt: codeExpiresAt,
		deliveredAt:   deliveredAt,
		deliveredBy:   deliveredBy,
		version:       version,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("shop order id", id, &so.id),
		validateID("shop id", shopID, &so.shopID),
		validateID("owner id", ownerID, &so.ownerID),
	); err != nil {
		return nil, err
	}

	return so, nil
}

// Validate ensures the shop order was created through a constructor.
func (so *ShopOrder) Validate() error {
	if so == nil {
		return ErrShopOrderIsNotConstructed
	}
	return so.guard.Validate(ErrShopOrderIsNotConstructed)
}

// ID returns the shop order's unique identifier.
func (so *ShopOrder) ID() kernel.UUID {
	return so.id
}

// ShopID returns the fulfilling shop's identifier.
func (so *ShopOrder) ShopID() kernel.UUID {
	return so.shopID
}

// OwnerID returns the shop owner's identifier.
func (so *ShopOrder) OwnerID() kernel.UUID {
	return so.ownerID
}

// Items returns a copy of the line-item snapshots.
func (so *ShopOrder) Items() []LineItem {
	return append([]LineItem(nil), so.items...)
}

// Subtotal returns the fixed sum of line-item totals in minor currency units.
func (so *ShopOrder) Subtotal() int64 {
	return so.subtotal
}

// Status returns the current lifecycle status.
func (so *ShopOrder) Status() Status {
	return so.status
}

// Rider returns the assigned rider's ID, or nil when none is assigned.
func (so *ShopOrder) Rider() *kernel.UUID {
	return so.riderID
}

// Assignment returns the bound assignment's ID, or nil when none is bound.
func (so *ShopOrder) Assignment() *kernel.UUID {
	return so.assignmentID
}

// RiderLocation returns the last known rider position snapshot, or nil.
func (so *ShopOrder) RiderLocation() *kernel.GeoPoint {
	return so.riderLocation
}

// DeliveryCode returns the stored one-time code ("" when none is active).
func (so *ShopOrder) DeliveryCode() string {
	return so.deliveryCode
}

// CodeExpiresAt returns the one-time code expiry, or nil when none is active.
func (so *ShopOrder) CodeExpiresAt() *time.Time {
	return so.codeExpiresAt
}

// DeliveredAt returns the delivery completion time, or nil if not delivered.
func (so *ShopOrder) DeliveredAt() *time.Time {
	return so.deliveredAt
}

// DeliveredBy returns the rider who completed the delivery. It survives the
// completion cleanup that clears the live rider reference.
func (so *ShopOrder) DeliveredBy() *kernel.UUID {
	return so.deliveredBy
}

// Version returns the optimistic-lock version loaded from persistence.
func (so *ShopOrder) Version() int {
	return so.version
}

// TransitionTo applies an owner-driven forward status move.
// Delivered and Cancelled are rejected here; they have dedicated paths.
func (so *ShopOrder) TransitionTo(next Status) error {
	newStatus, err := so.status.TransitionTo(next)
	if err != nil {
		return err
	}

	so.status = newStatus
	return nil
}

// AttachAssignment binds a broadcast assignment to the shop order.
// The order must be out for delivery and must not already carry an assignment.
func (so *ShopOrder) AttachAssignment(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}
	if so.status != StatusOutForDelivery {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to attach an assignment", so.status))
	}
	if so.assignmentID != nil {
		return ErrAssignmentAlreadyAttached
	}

	so.assignmentID = &assignmentID
	return nil
}

// DetachAssignment unbinds an assignment whose broadcast expired without a
// winner, returning the shop order to the dispatchable state so a new broadcast
// can be attached. Rejected once a rider accepted; accepted jobs close through
// the completion gate or cancellation.
func (so *ShopOrder) DetachAssignment() error {
	if so.assignmentID == nil {
		return ErrNoAssignmentAttached
	}
	if so.riderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignment",
			errors.New("cannot detach an accepted assignment"))
	}

	so.assignmentID = nil
	return nil
}

// AcceptBy records the winning rider on the shop order and seeds the rider
// location snapshot from the rider's last known presence, when available.
// The status stays OutForDelivery; it was already set before the broadcast.
func (so *ShopOrder) AcceptBy(riderID kernel.UUID, location *kernel.GeoPoint) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if so.assignmentID == nil {
		return ErrNoAssignmentAttached
	}

	so.riderID = &riderID
	so.riderLocation = location
	return nil
}

// UpdateRiderLocation refreshes the rider position snapshot so trackers see live
// movement without re-querying presence.
func (so *ShopOrder) UpdateRiderLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if so.riderID == nil {
		return ErrNoRiderAssigned
	}

	so.riderLocation = &p
	return nil
}

// IssueDeliveryCode stores a one-time code with a five-minute expiry.
// Reissuing replaces any previous code.
func (so *ShopOrder) IssueDeliveryCode(code string, now time.Time) error {
	if code == "" {
		return errs.NewValueIsRequiredError("delivery code")
	}

	expiry := now.Add(deliveryCodeTTL)
	so.deliveryCode = code
	so.codeExpiresAt = &expiry
	return nil
}

// VerifyDeliveryCode checks the submitted code and, on match, completes the
// delivery: status becomes Delivered, deliveredAt/deliveredBy are recorded, and
// the code, rider reference, assignment reference, and location snapshot are all
// cleared. This is the only path into Delivered and the only path that frees the
// rider's active-job slot on the order side.
func (so *ShopOrder) VerifyDeliveryCode(submitted string, now time.Time) error {
	if so.deliveryCode == "" || so.codeExpiresAt == nil ||
		so.deliveryCode != submitted || now.After(*so.codeExpiresAt) {
		return ErrCodeInvalidOrExpired
	}

	newStatus, err := so.status.deliver()
	if err != nil {
		return err
	}

	deliveredAt := now
	so.status = newStatus
	so.deliveredAt = &deliveredAt
	so.deliveredBy = so.riderID

	so.deliveryCode = ""
	so.codeExpiresAt = nil
	so.riderID = nil
	so.assignmentID = nil
	so.riderLocation = nil
	return nil
}

// Cancel moves the shop order into the terminal Cancelled state and clears any
// live rider and assignment references. Callers cancel the bound assignment in
// the ledger as part of the same transaction.
func (so *ShopOrder) Cancel() error {
	newStatus, err := so.status.Cancel()
	if err != nil {
		return err
	}

	so.status = newStatus
	so.riderID = nil
	so.assignmentID = nil
	so.riderLocation = nil
	so.deliveryCode = ""
	so.codeExpiresAt = nil
	return nil
}

func validateID(name string, id kernel.UUID, target *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	*target = id
	return nil
}
