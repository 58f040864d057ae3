package geo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const providersKey = "providers:verified"

// NearbyProvider is a provider returned from the Redis GEO index.
type NearbyProvider struct {
	ID     int
	DistKm float64
	Lon    float64
	Lat    float64
}

// ProviderLocator mirrors verified provider coordinates into a Redis GEO set
// so search can do radius-bounded, distance-sorted candidate retrieval
// without scanning the providers table.
type ProviderLocator struct {
	rdb *redis.Client
}

func NewProviderLocator(rdb *redis.Client) *ProviderLocator {
	return &ProviderLocator{rdb: rdb}
}

func memberName(providerID int) string {
	return fmt.Sprintf("provider:%d", providerID)
}

func parseProviderMember(member string) (int, error) {
	parts := strings.Split(member, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid member %q", member)
	}
	return strconv.Atoi(parts[1])
}

// Sync upserts a provider's coordinates into the index.
func (l *ProviderLocator) Sync(ctx context.Context, providerID int, lon, lat float64) error {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("geo: invalid coords lon=%.8f lat=%.8f", lon, lat)
	}
	return l.rdb.GeoAdd(ctx, providersKey, &redis.GeoLocation{
		Name:      memberName(providerID),
		Longitude: lon,
		Latitude:  lat,
	}).Err()
}

// Remove drops a provider from the index (unverified or deactivated).
func (l *ProviderLocator) Remove(ctx context.Context, providerID int) error {
	return l.rdb.ZRem(ctx, providersKey, memberName(providerID)).Err()
}

// Nearby returns every provider within radiusKm sorted by distance
// (ascending). Category/price/rating filters and pagination are applied by
// the caller after the relational lookup.
func (l *ProviderLocator) Nearby(ctx context.Context, lon, lat, radiusKm float64) ([]NearbyProvider, error) {
	res, err := l.rdb.GeoSearchLocation(ctx, providersKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	providers := make([]NearbyProvider, 0, len(res))
	for _, item := range res {
		id, err := parseProviderMember(item.Name)
		if err != nil {
			continue
		}
		providers = append(providers, NearbyProvider{
			ID:     id,
			DistKm: item.Dist,
			Lon:    item.Longitude,
			Lat:    item.Latitude,
		})
	}
	return providers, nil
}
