package ports

import (
	"context"
)

// Event names emitted by the dispatch flows. Consumers subscribe by name; the
// scope identifies the audience partition (a user ID, a shop ID, or a rider ID).
const (
	EventOrderCreated         = "order.created"
	EventOrderStatusUpdated   = "order.statusUpdated"
	EventAssignmentOffered    = "assignment.offered"
	EventAssignmentAccepted   = "assignment.accepted"
	EventAssignmentExpired    = "assignment.expired"
	EventDeliveryCompleted    = "delivery.completed"
	EventRiderLocationUpdated = "rider.locationUpdated"
)

// Event is one notification emitted after a state change commits.
type Event struct {
	// Name is one of the Event* constants.
	Name string

	// Scope identifies the audience: the user, shop, or rider the event is for.
	// The bus partitions by scope so per-audience ordering is preserved.
	Scope string

	// Payload is the event body, marshaled by the publisher.
	Payload any
}

// EventPublisher defines the contract for fanning out domain events to
// interested parties. Handlers publish after the transaction commits; a
// publish failure is logged and never rolls back the state change.
type EventPublisher interface {
	// Publish emits one event. Implementations may deliver asynchronously;
	// returning nil means the event was accepted, not that every consumer
	// saw it.
	Publish(ctx context.Context, event Event) error
}
