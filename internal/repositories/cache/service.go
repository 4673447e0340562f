package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kycdesk/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Client returns the underlying redis client.
func (s *CacheService) Client() *redis.Client {
	return s.client
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds "<entity>:<keyType>:<value>".
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// cachedUser mirrors models.User minus the credential hash, which is never
// written to the cache.
type cachedUser struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Region    string      `json:"region"`
	Phone     *string     `json:"phone"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CacheUser stores the identity fields of user under its id.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Region:    user.Region,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// GetUser returns the cached user or found=false.
func (s *CacheService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	var cu cachedUser
	found, err := s.Get(ctx, s.GenerateKey("user", "id", id), &cu)
	if err != nil || !found {
		return nil, false, err
	}
	return &models.User{
		ID:        cu.ID,
		Name:      cu.Name,
		Email:     cu.Email,
		Role:      cu.Role,
		Region:    cu.Region,
		Phone:     cu.Phone,
		CreatedAt: cu.CreatedAt,
		UpdatedAt: cu.UpdatedAt,
	}, true, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", id))
}

// InvalidateAllUsers drops every cached identity and reports how many were
// removed.
func (s *CacheService) InvalidateAllUsers(ctx context.Context) (int, error) {
	return s.deleteMatching(ctx, s.GenerateKey("user", "id", "*"))
}

// Close closes the redis client. LimiterStorage shares it.
func (s *CacheService) Close() error {
	return s.client.Close()
}
