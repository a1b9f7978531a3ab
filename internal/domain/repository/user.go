package repository

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users and their carts.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// UpdateCart rewrites the embedded cart in full (single-document update).
	UpdateCart(ctx context.Context, userID string, cart model.Cart) error
}
