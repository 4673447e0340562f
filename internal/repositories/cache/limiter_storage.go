package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const limiterPrefix = "limiter:"

// LimiterStorage implements fiber.Storage on redis so login throttling
// counts attempts across every API instance. While redis is unreachable the
// counters live in process memory, so each instance still enforces the limit
// on its own.
type LimiterStorage struct {
	client   *redis.Client
	timeout  time.Duration
	local    *localStore
	degraded atomic.Bool
}

func NewLimiterStorage(client *redis.Client) *LimiterStorage {
	return &LimiterStorage{client: client, timeout: 2 * time.Second, local: newLocalStore()}
}

func (s *LimiterStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// fallback records a redis failure; it logs only when the state flips.
func (s *LimiterStorage) fallback(err error) {
	if s.degraded.CompareAndSwap(false, true) {
		log.Warn().Err(err).Msg("limiter storage unreachable, counting attempts in memory")
	}
}

func (s *LimiterStorage) recovered() {
	if s.degraded.CompareAndSwap(true, false) {
		log.Info().Msg("limiter storage reachable again")
	}
}

// Get returns nil, nil for a missing key.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, limiterPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		s.recovered()
		return nil, nil
	case err != nil:
		s.fallback(err)
		return s.local.get(key), nil
	}
	s.recovered()
	return val, nil
}

func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Set(ctx, limiterPrefix+key, val, exp).Err(); err != nil {
		s.fallback(err)
		s.local.set(key, val, exp)
		return nil
	}
	s.recovered()
	return nil
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	s.local.delete(key)
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, limiterPrefix+key).Err()
}

// Reset removes every limiter key.
func (s *LimiterStorage) Reset() error {
	s.local.reset()
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.client.Scan(ctx, 0, limiterPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close is a no-op; the client is owned by CacheService.
func (s *LimiterStorage) Close() error {
	return nil
}

type localEntry struct {
	val []byte
	exp time.Time
}

// localStore holds limiter counters while redis is down.
type localStore struct {
	mu      sync.Mutex
	entries map[string]localEntry
	now     func() time.Time
}

func newLocalStore() *localStore {
	return &localStore{entries: map[string]localEntry{}, now: time.Now}
}

func (l *localStore) get(key string) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return nil
	}
	if !e.exp.IsZero() && !l.now().Before(e.exp) {
		delete(l.entries, key)
		return nil
	}
	return e.val
}

func (l *localStore) set(key string, val []byte, exp time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := localEntry{val: append([]byte(nil), val...)}
	if exp > 0 {
		e.exp = l.now().Add(exp)
	}
	l.entries[key] = e
}

func (l *localStore) delete(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

func (l *localStore) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = map[string]localEntry{}
}
