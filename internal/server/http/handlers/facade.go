package handlers

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	AuthenticateAdmin(email, password string) (string, error)
	ParseToken(token string) (string, error)
}

// OrderFacade encapsulates payment verification and order operations.
type OrderFacade interface {
	VerifyPayment(ctx context.Context, reference string) (*model.Order, bool, error)
	Orders(ctx context.Context, buyerID string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// CartFacade provides cart mutations scoped to one user.
type CartFacade interface {
	CartAdd(ctx context.Context, userID, productID, size string) (model.Cart, error)
	CartUpdate(ctx context.Context, userID, productID, size string, quantity int) (model.Cart, error)
	CartGet(ctx context.Context, userID string) (model.Cart, error)
	CartClear(ctx context.Context, userID string) (model.Cart, error)
}

// ProductFacade covers catalog management and browsing.
type ProductFacade interface {
	AddProduct(ctx context.Context, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error)
	RemoveProduct(ctx context.Context, id string) (*model.Product, error)
	Products(ctx context.Context, page, limit int) ([]model.Product, int64, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	CartFacade
	ProductFacade
}
