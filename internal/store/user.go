package store

import (
	"context"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the persistence contract for user accounts. Only the
// networked store variant has one; the local store is anonymous.
type UserStore interface {
	// Create persists a new user.
	// Returns ErrEmailExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
