package repository

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateFromPayment persists the order keyed by its gateway reference.
	// A reference that was already materialized returns the existing order
	// with created=false instead of an error.
	CreateFromPayment(ctx context.Context, order *model.Order) (*model.Order, bool, error)
	GetByReference(ctx context.Context, reference string) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
