package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"kycdesk/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client for cfg. Timeouts are short because every
// caller treats redis as optional and falls back to the database.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// HealthCheck pings the server.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// deleteMatching removes every key matching pattern. SCAN keeps the server
// responsive on large keyspaces.
func (s *CacheService) deleteMatching(ctx context.Context, pattern string) (int, error) {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return len(keys), s.client.Del(ctx, keys...).Err()
}
