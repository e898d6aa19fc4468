package repository

import (
	"context"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its user ID.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for the user.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by the user ID.
	Delete(ctx context.Context, userID string) error
}

// SupplementRepository defines the interface for supplement catalog reads.
type SupplementRepository interface {
	// List returns available supplements, optionally filtered by category.
	// An empty category returns all supplements.
	List(ctx context.Context, category string) ([]domain.Supplement, error)

	// GetByID retrieves a single supplement by its ID.
	GetByID(ctx context.Context, id string) (*domain.Supplement, error)
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *domain.User) error

	// GetByID retrieves a user by their ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, u *domain.User) error

	// Delete removes a user by their ID.
	Delete(ctx context.Context, id string) error
}
