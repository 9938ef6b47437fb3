package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// RedisCache is the shared L2 cache for price histories
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// NewRedisCache wraps a client; keys are namespaced under prefix
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

// GetHistory returns a cached series. Redis errors are treated as misses.
func (c *RedisCache) GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, bool) {
	raw, err := c.rdb.Get(ctx, c.prefix+HistoryKey(symbol, window)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warnf("redis get %s failed: %v", symbol, err)
		return nil, false
	}
	var data []models.PricePoint
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warnf("corrupt cached history for %s: %v", symbol, err)
		return nil, false
	}
	return data, true
}

// SetHistory stores a series that expires at expiresAt
func (c *RedisCache) SetHistory(ctx context.Context, symbol string, window models.Window, data []models.PricePoint, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warnf("failed to encode history for %s: %v", symbol, err)
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+HistoryKey(symbol, window), payload, ttl).Err(); err != nil {
		log.Warnf("redis set %s failed: %v", symbol, err)
	}
}
