package repositories

import (
	"context"
	"errors"
	"strings"

	"kycdesk/internal/models"
	"kycdesk/internal/repositories/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository. cache may be
// nil, in which case every read goes to the database.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if r.cache != nil {
		user, found, err := r.cache.GetUser(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("user cache read failed")
		}
		if found {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(ctx, &user); err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("failed to cache user")
		}
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translate(err)
	}

	if r.cache != nil {
		if err := r.cache.InvalidateUser(ctx, user.ID); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to invalidate user cache")
		}
	}
	return nil
}
