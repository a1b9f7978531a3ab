package repository

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// List returns a page of products newest first plus the total count.
	List(ctx context.Context, offset, limit int) ([]model.Product, int64, error)
}
