package commands

import (
	"context"
	"time"

	"foodflow/internal/core/ports"
)

// SetRiderAvailabilityCommandHandler flips a rider's online flag in the geo
// index. No aggregate state is involved, so there is no transaction here.
type SetRiderAvailabilityCommandHandler struct {
	geo ports.GeoIndex
}

// NewSetRiderAvailabilityCommandHandler creates a handler for availability changes.
func NewSetRiderAvailabilityCommandHandler(geo ports.GeoIndex) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{geo: geo}
}

// Handle applies the availability change.
func (h *SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.geo.SetAvailability(ctx, cmd.RiderID(), cmd.Online(), time.Now())
}
