package commands

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/domain/model/assignment"
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/order"
	"foodflow/internal/core/domain/services"
	"foodflow/internal/core/ports"
)

const (
	// matchRadiusMeters is how far from the delivery destination riders are
	// considered for a broadcast.
	matchRadiusMeters = 10_000

	// geoQueryTimeout bounds the geo-index lookup so a slow index cannot stall
	// the surrounding transaction.
	geoQueryTimeout = 2 * time.Second
)

// broadcaster opens delivery broadcasts: it finds nearby reachable riders,
// filters out the busy ones, creates the assignment ledger entry, and binds it
// to the shop order. Shared by the dispatch-on-transition and rebroadcast flows.
//
// Matching degrades silently: an unusable destination or a failing geo index
// yields no broadcast, not an error. The shop order stays dispatchable and the
// caller reports "no riders available".
type broadcaster struct {
	geo      ports.GeoIndex
	selector services.CandidateSelector
	logger   *slog.Logger
}

func newBroadcaster(geo ports.GeoIndex, logger *slog.Logger) broadcaster {
	return broadcaster{
		geo:      geo,
		selector: services.NewCandidateSelector(),
		logger:   logger,
	}
}

// openBroadcast creates and attaches a broadcast assignment for the shop order.
// Returns nil without error when no candidate rider is available.
func (b broadcaster) openBroadcast(
	ctx context.Context,
	uow UoW,
	shopOrder *order.ShopOrder,
	destination order.Address,
	now time.Time,
) (*assignment.Assignment, error) {
	point, err := destination.Point()
	if err != nil {
		b.logger.Warn("destination is not matchable, skipping broadcast",
			"shopOrderId", shopOrder.ID().String(), "error", err)
		return nil, nil
	}

	geoCtx, cancel := context.WithTimeout(ctx, geoQueryTimeout)
	defer cancel()

	presences, err := b.geo.RidersNear(geoCtx, point, matchRadiusMeters)
	if err != nil {
		b.logger.Warn("geo index lookup failed, skipping broadcast",
			"shopOrderId", shopOrder.ID().String(), "error", err)
		return nil, nil
	}

	busy, err := uow.AssignmentRepository().GetActiveRiders(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := b.selector.Select(presences, busy)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	a, err := assignment.NewAssignment(
		kernel.NewUUID(), shopOrder.ID(), shopOrder.ShopID(), candidates, now)
	if err != nil {
		return nil, err
	}

	if err = shopOrder.AttachAssignment(a.ID()); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// announceBroadcast pushes assignment.offered to every candidate after commit.
// The offer carries the shop, items, address, and subtotal so a rider can
// decide without a follow-up query.
func (b broadcaster) announceBroadcast(
	ctx context.Context,
	publisher ports.EventPublisher,
	a *assignment.Assignment,
	shopOrder *order.ShopOrder,
	destination order.Address,
) {
	items := make([]map[string]any, 0, len(shopOrder.Items()))
	for _, item := range shopOrder.Items() {
		items = append(items, map[string]any{
			"name":      item.Name(),
			"unitPrice": item.UnitPrice(),
			"quantity":  item.Quantity(),
		})
	}

	for _, riderID := range a.Candidates() {
		event := ports.Event{
			Name:  ports.EventAssignmentOffered,
			Scope: riderID.String(),
			Payload: map[string]any{
				"assignmentId": a.ID().String(),
				"shopOrderId":  a.ShopOrderID().String(),
				"shopId":       a.ShopID().String(),
				"subtotal":     shopOrder.Subtotal(),
				"items":        items,
				"address": map[string]any{
					"text":      destination.Text(),
					"latitude":  destination.Latitude(),
					"longitude": destination.Longitude(),
				},
			},
		}
		if err := publisher.Publish(ctx, event); err != nil {
			b.logger.Warn("publish failed",
				"event", event.Name, "scope", event.Scope, "error", err)
		}
	}
}
