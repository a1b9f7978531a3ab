package test

import (
	"context"

	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	AdminFn        func(string, string) (string, error)
	ParseFn        func(string) (string, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// AuthenticateAdmin returns token for the admin login scenario.
func (s AuthFacadeStub) AuthenticateAdmin(email, password string) (string, error) {
	if s.AdminFn != nil {
		return s.AdminFn(email, password)
	}
	return "admin-token", nil
}

// ParseToken returns stored subject for authenticated requests.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "user-1", nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	VerifyFn       func(context.Context, string) (*model.Order, bool, error)
	OrdersFn       func(context.Context, string) ([]model.Order, error)
	AllOrdersFn    func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
}

// VerifyPayment delegates to provided function or returns a default order.
func (s OrderFacadeStub) VerifyPayment(ctx context.Context, reference string) (*model.Order, bool, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	return &model.Order{ID: "order-1", Reference: reference, Status: model.OrderStatusProcessing}, true, nil
}

// Orders returns predefined orders for given buyer.
func (s OrderFacadeStub) Orders(ctx context.Context, buyerID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, buyerID)
	}
	return []model.Order{{ID: "order-1", BuyerID: buyerID}}, nil
}

// AllOrders returns predefined orders for the admin listing.
func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: "order-1"}}, nil
}

// UpdateOrderStatus executes configured status handler.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn    func(context.Context, string, string, string) (model.Cart, error)
	UpdateFn func(context.Context, string, string, string, int) (model.Cart, error)
	GetFn    func(context.Context, string) (model.Cart, error)
	ClearFn  func(context.Context, string) (model.Cart, error)
}

// CartAdd delegates to override or returns a single-entry cart.
func (s CartFacadeStub) CartAdd(ctx context.Context, userID, productID, size string) (model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, size)
	}
	cart := model.NewCart()
	cart.Add(productID, size)
	return cart, nil
}

// CartUpdate delegates to override or returns the requested quantity.
func (s CartFacadeStub) CartUpdate(ctx context.Context, userID, productID, size string, quantity int) (model.Cart, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, productID, size, quantity)
	}
	cart := model.NewCart()
	cart.SetQuantity(productID, size, quantity)
	return cart, nil
}

// CartGet returns configured cart contents.
func (s CartFacadeStub) CartGet(ctx context.Context, userID string) (model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return model.NewCart(), nil
}

// CartClear returns an empty cart.
func (s CartFacadeStub) CartClear(ctx context.Context, userID string) (model.Cart, error) {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return model.NewCart(), nil
}

// ProductFacadeStub simulates catalog operations.
type ProductFacadeStub struct {
	AddFn    func(context.Context, usecase.ProductInput, []usecase.ImageFile) (*model.Product, error)
	UpdateFn func(context.Context, string, usecase.ProductInput, []usecase.ImageFile) (*model.Product, error)
	RemoveFn func(context.Context, string) (*model.Product, error)
	ListFn   func(context.Context, int, int) ([]model.Product, int64, error)
	GetFn    func(context.Context, string) (*model.Product, error)
}

// AddProduct delegates to override or echoes the input back.
func (s ProductFacadeStub) AddProduct(ctx context.Context, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, in, images)
	}
	return &model.Product{ID: "product-1", Name: in.Name, Price: in.Price}, nil
}

// UpdateProduct delegates to override or echoes the input back.
func (s ProductFacadeStub) UpdateProduct(ctx context.Context, id string, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in, images)
	}
	return &model.Product{ID: id, Name: in.Name, Price: in.Price}, nil
}

// RemoveProduct delegates to override or returns a placeholder.
func (s ProductFacadeStub) RemoveProduct(ctx context.Context, id string) (*model.Product, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

// Products returns the configured catalog page.
func (s ProductFacadeStub) Products(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, page, limit)
	}
	return []model.Product{{ID: "product-1"}}, 1, nil
}

// Product returns one configured product.
func (s ProductFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id}, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CartFacadeStub
	ProductFacadeStub
}

// VerifierStub stands in for the payment gateway client.
type VerifierStub struct {
	VerifyFn func(context.Context, string) (*model.Payment, error)
	Payment  *model.Payment
	Err      error
	Calls    []string
}

// Verify records the reference and returns the configured payment.
func (s *VerifierStub) Verify(ctx context.Context, reference string) (*model.Payment, error) {
	s.Calls = append(s.Calls, reference)
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Payment != nil {
		return s.Payment, nil
	}
	return &model.Payment{Reference: reference, Status: model.PaymentStatusSuccess}, nil
}

// UploaderStub stands in for the image host.
type UploaderStub struct {
	UploadFn func(context.Context, []byte, string) (string, error)
	URL      string
	Err      error
	Calls    []string
}

// Upload records the filename and returns the configured URL.
func (s *UploaderStub) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	s.Calls = append(s.Calls, filename)
	if s.UploadFn != nil {
		return s.UploadFn(ctx, data, filename)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.URL != "" {
		return s.URL, nil
	}
	return "https://images.example/" + filename, nil
}
