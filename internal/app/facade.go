package app

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/usecase"
)

// StoreFacade aggregates the use cases behind the HTTP surface.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	carts    *usecase.CartUseCase
	products *usecase.ProductUseCase
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, carts *usecase.CartUseCase, products *usecase.ProductUseCase) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, carts: carts, products: products}
}

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) AuthenticateAdmin(email, password string) (string, error) {
	return f.auth.AuthenticateAdmin(email, password)
}

func (f *StoreFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) VerifyPayment(ctx context.Context, reference string) (*model.Order, bool, error) {
	return f.orders.Materialize(ctx, reference)
}

func (f *StoreFacade) Orders(ctx context.Context, buyerID string) ([]model.Order, error) {
	return f.orders.ListByBuyer(ctx, buyerID)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.SetStatus(ctx, orderID, status)
}

func (f *StoreFacade) CartAdd(ctx context.Context, userID, productID, size string) (model.Cart, error) {
	return f.carts.Add(ctx, userID, productID, size)
}

func (f *StoreFacade) CartUpdate(ctx context.Context, userID, productID, size string, quantity int) (model.Cart, error) {
	return f.carts.Update(ctx, userID, productID, size, quantity)
}

func (f *StoreFacade) CartGet(ctx context.Context, userID string) (model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *StoreFacade) CartClear(ctx context.Context, userID string) (model.Cart, error) {
	return f.carts.Clear(ctx, userID)
}

func (f *StoreFacade) AddProduct(ctx context.Context, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error) {
	return f.products.Create(ctx, in, images)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id string, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error) {
	return f.products.Update(ctx, id, in, images)
}

func (f *StoreFacade) RemoveProduct(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Delete(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	return f.products.List(ctx, page, limit)
}

func (f *StoreFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}
