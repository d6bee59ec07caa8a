package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tastify/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCoordinateCache remembers geocoded queries as "lat,lng" strings.
type RedisCoordinateCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCoordinateCache(client *redis.Client, ttl time.Duration) *RedisCoordinateCache {
	return &RedisCoordinateCache{Client: client, TTL: ttl}
}

func cacheKey(query string) string {
	return "geo:" + query
}

func (c *RedisCoordinateCache) Get(ctx context.Context, query string) (*domain.Coordinates, error) {
	value, err := c.Client.Get(ctx, cacheKey(query)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cached coordinates %q", value)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	return &domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}

func (c *RedisCoordinateCache) Set(ctx context.Context, query string, coords domain.Coordinates) error {
	value := strconv.FormatFloat(coords.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(coords.Longitude, 'f', -1, 64)
	return c.Client.Set(ctx, cacheKey(query), value, c.TTL).Err()
}
