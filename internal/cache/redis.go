package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skyreserve/airline-backend/internal/config"
	"github.com/skyreserve/airline-backend/internal/models"
)

// RedisCache provides short-lived seat locks and a flights list cache
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

// NewRedisCache creates a new RedisCache from config
func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		flightsTTL: cfg.FlightCacheTTL,
	}
}

// AcquireSeatLock takes a short exclusive lock on one seat position.
// Returns false if another booking already holds it.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, scheduleID int64, row int, column string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(scheduleID, row, column), "locked", ttl).Result()
}

// ReleaseSeatLock drops the lock on one seat position
func (c *RedisCache) ReleaseSeatLock(ctx context.Context, scheduleID int64, row int, column string) error {
	return c.client.Del(ctx, seatLockKey(scheduleID, row, column)).Err()
}

// GetFlights returns the cached flights list, or nil on a cache miss
func (c *RedisCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []models.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetFlights stores the flights list with the configured TTL
func (c *RedisCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey() string {
	return "cache:flights"
}

func seatLockKey(scheduleID int64, row int, column string) string {
	return fmt.Sprintf("lock:schedule:%d:seat:%d%s", scheduleID, row, column)
}
