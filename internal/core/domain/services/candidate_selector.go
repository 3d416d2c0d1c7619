package services

import (
	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/rider"
)

// CandidateSelector is a domain service that narrows a set of nearby riders down
// to the ones a delivery offer can actually be broadcast to.
//
// The geo index answers "who is near the shop"; this service answers "who of
// those can take the job": the rider must be reachable (online with a push
// channel) and must not already hold a live assignment. Every candidate gets
// the offer simultaneously, so no ranking is applied; the reported order is
// preserved.
//
// An empty result is a normal outcome, not an error: callers report it as "no
// riders available" and leave the shop order dispatchable for a retry.
type CandidateSelector struct{}

// NewCandidateSelector creates a CandidateSelector.
func NewCandidateSelector() CandidateSelector {
	return CandidateSelector{}
}

// Select filters presences down to broadcast candidates. Riders in busyRiders
// (those holding a non-terminal assignment) are excluded.
func (s CandidateSelector) Select(
	presences []rider.Presence,
	busyRiders []kernel.UUID,
) ([]kernel.UUID, error) {
	busy := make(map[string]struct{}, len(busyRiders))
	for _, id := range busyRiders {
		busy[id.String()] = struct{}{}
	}

	result := make([]kernel.UUID, 0, len(presences))
	for _, p := range presences {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.IsReachable() {
			continue
		}
		if _, taken := busy[p.RiderID().String()]; taken {
			continue
		}

		result = append(result, p.RiderID())
	}
	return result, nil
}
