package cache

import (
	"context"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache shares resolved coordinates between service replicas.
// Values are stored as "lat,lon" strings with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, q := range uniq {
		keys[i] = redisKeyPrefix + q
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c, err := decodeCoordinate(s)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: key %q: %w", uniq[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.PutMany")(&err)

	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for key, c := range results {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert geocode cache: empty query key")
		}
		pipe.Set(ctx, redisKeyPrefix+key, encodeCoordinate(c), r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}
	return nil
}

func encodeCoordinate(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func decodeCoordinate(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed coordinate %q", s)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon: %w", err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
