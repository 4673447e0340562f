package repositories

import (
	"context"
	"errors"

	"kycdesk/internal/models"

	"github.com/google/uuid"
)

var ErrEmailTaken = errors.New("email already taken")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by their ID. The credential hash may be
	// absent when the record is served from the cache.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user, credential hash included, by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates an existing user's information
	Update(ctx context.Context, user *models.User) error
}
