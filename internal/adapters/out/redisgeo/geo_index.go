// Package redisgeo implements the rider location index on Redis. Rider
// positions live in one geo set queried with GEOSEARCH; the rest of the
// presence record (availability, push channel, last update) lives in a hash
// per rider. The index is ephemeral working state: losing it degrades matching
// until the next heartbeats arrive, but never corrupts the assignment ledger.
package redisgeo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"foodflow/internal/core/domain/model/kernel"
	"foodflow/internal/core/domain/model/rider"
	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

const (
	geoKey            = "riders:geo"
	presenceKeyPrefix = "riders:presence:"
)

// RedisGeoIndex implements the GeoIndex port on a Redis client.
type RedisGeoIndex struct {
	client *redis.Client
}

// NewRedisGeoIndex creates a geo index over the given Redis client.
func NewRedisGeoIndex(client *redis.Client) *RedisGeoIndex {
	return &RedisGeoIndex{client: client}
}

var _ ports.GeoIndex = (*RedisGeoIndex)(nil)

// UpdatePresence upserts the rider's presence hash and keeps the geo set in
// step: located online riders are added, offline riders are removed.
func (g *RedisGeoIndex) UpdatePresence(ctx context.Context, presence rider.Presence) error {
	if err := presence.Validate(); err != nil {
		return err
	}

	fields := map[string]any{
		"online":     strconv.FormatBool(presence.IsOnline()),
		"channel":    presence.Channel(),
		"updated_at": presence.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
	if loc := presence.Location(); loc != nil {
		fields["lat"] = strconv.FormatFloat(loc.Latitude(), 'f', -1, 64)
		fields["lon"] = strconv.FormatFloat(loc.Longitude(), 'f', -1, 64)
	}

	pipe := g.client.TxPipeline()
	pipe.HSet(ctx, presenceKey(presence.RiderID()), fields)

	switch {
	case presence.IsOnline() && presence.Location() != nil:
		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      presence.RiderID().String(),
			Latitude:  presence.Location().Latitude(),
			Longitude: presence.Location().Longitude(),
		})
	case !presence.IsOnline():
		pipe.ZRem(ctx, geoKey, presence.RiderID().String())
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewUpstreamFailureError("redis", err)
	}
	return nil
}

// SetAvailability flips the online flag without touching the rest of the
// presence record. Going offline removes the rider from the geo set so they
// stop appearing as a candidate immediately.
func (g *RedisGeoIndex) SetAvailability(
	ctx context.Context,
	riderID kernel.UUID,
	online bool,
	updatedAt time.Time,
) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	pipe := g.client.TxPipeline()
	pipe.HSet(ctx, presenceKey(riderID), map[string]any{
		"online":     strconv.FormatBool(online),
		"updated_at": updatedAt.UTC().Format(time.RFC3339Nano),
	})

	if online {
		// re-add to the geo set from the stored fix, if one exists
		latCmd := g.client.HGet(ctx, presenceKey(riderID), "lat")
		lonCmd := g.client.HGet(ctx, presenceKey(riderID), "lon")
		if latCmd.Err() == nil && lonCmd.Err() == nil {
			lat, latErr := strconv.ParseFloat(latCmd.Val(), 64)
			lon, lonErr := strconv.ParseFloat(lonCmd.Val(), 64)
			if latErr == nil && lonErr == nil {
				pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
					Name:      riderID.String(),
					Latitude:  lat,
					Longitude: lon,
				})
			}
		}
	} else {
		pipe.ZRem(ctx, geoKey, riderID.String())
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errs.NewUpstreamFailureError("redis", err)
	}
	return nil
}

// GetPresence retrieves a rider's presence record.
func (g *RedisGeoIndex) GetPresence(ctx context.Context, riderID kernel.UUID) (rider.Presence, error) {
	if err := riderID.Validate(); err != nil {
		return rider.Presence{}, err
	}

	fields, err := g.client.HGetAll(ctx, presenceKey(riderID)).Result()
	if err != nil {
		return rider.Presence{}, errs.NewUpstreamFailureError("redis", err)
	}
	if len(fields) == 0 {
		return rider.Presence{}, errs.NewObjectNotFoundError("rider presence", riderID.String())
	}

	return presenceFromFields(riderID, fields)
}

// RidersNear lists online, located riders within radiusMeters of the center,
// nearest first.
func (g *RedisGeoIndex) RidersNear(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusMeters float64,
) ([]rider.Presence, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	locations, err := g.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Latitude:   center.Latitude(),
			Longitude:  center.Longitude(),
			Radius:     radiusMeters,
			RadiusUnit: "m",
			Sort:       "ASC",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return nil, errs.NewUpstreamFailureError("redis", err)
	}

	presences := make([]rider.Presence, 0, len(locations))
	for _, loc := range locations {
		riderID, idErr := kernel.UUIDFromString(loc.Name)
		if idErr != nil {
			continue
		}

		presence, presenceErr := g.GetPresence(ctx, riderID)
		if presenceErr != nil {
			// geo entry without a presence hash: skip, the next heartbeat heals it
			continue
		}
		if !presence.IsOnline() {
			continue
		}

		presences = append(presences, presence)
	}

	return presences, nil
}

func presenceKey(riderID kernel.UUID) string {
	return presenceKeyPrefix + riderID.String()
}

func presenceFromFields(riderID kernel.UUID, fields map[string]string) (rider.Presence, error) {
	online := fields["online"] == "true"

	var location *kernel.GeoPoint
	if fields["lat"] != "" && fields["lon"] != "" {
		lat, latErr := strconv.ParseFloat(fields["lat"], 64)
		lon, lonErr := strconv.ParseFloat(fields["lon"], 64)
		if latErr != nil || lonErr != nil {
			return rider.Presence{}, fmt.Errorf("invalid stored location for rider %s", riderID)
		}
		point, pointErr := kernel.NewGeoPoint(lat, lon)
		if pointErr != nil {
			return rider.Presence{}, pointErr
		}
		location = &point
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		updatedAt = time.Time{}
	}

	return rider.NewPresence(riderID, online, location, fields["channel"], updatedAt)
}
