package test

import (
	"context"
	"strconv"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[string]*model.User
	Next    int
	Err     error

	CartWrites []CartWrite
}

// CartWrite records one UpdateCart invocation.
type CartWrite struct {
	UserID string
	Cart   model.Cart
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           "user-" + strconv.Itoa(s.Next),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Cart:         model.NewCart(),
	}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateCart replaces the stored cart snapshot and records the write.
func (s *UserRepositoryStub) UpdateCart(ctx context.Context, userID string, cart model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Cart = cart
	s.CartWrites = append(s.CartWrites, CartWrite{UserID: userID, Cart: cart})
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFromPaymentFn func(context.Context, *model.Order) (*model.Order, bool, error)
	GetByReferenceFn    func(context.Context, string) (*model.Order, error)
	ListByBuyerFn       func(context.Context, string) ([]model.Order, error)
	ListAllFn           func(context.Context) ([]model.Order, error)
	UpdateStatusFn      func(context.Context, string, model.OrderStatus) error

	Created     []model.Order
	Orders      []model.Order
	UpdateCalls []StatusUpdateCall
}

// StatusUpdateCall stores information about UpdateStatus invocations.
type StatusUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// CreateFromPayment tracks invocations and returns configured responses.
// Without an override the stub behaves idempotently on the reference.
func (s *OrderRepositoryStub) CreateFromPayment(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	if s.CreateFromPaymentFn != nil {
		return s.CreateFromPaymentFn(ctx, order)
	}
	for i := range s.Created {
		if s.Created[i].Reference == order.Reference {
			existing := s.Created[i]
			return &existing, false, nil
		}
	}
	s.Created = append(s.Created, *order)
	stored := *order
	return &stored, true, nil
}

// GetByReference returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	if s.GetByReferenceFn != nil {
		return s.GetByReferenceFn(ctx, reference)
	}
	for _, o := range s.Created {
		if o.Reference == reference {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer returns orders from configured slice.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	if s.ListByBuyerFn != nil {
		return s.ListByBuyerFn(ctx, buyerID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListAll returns every configured order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.Orders, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, StatusUpdateCall{OrderID: orderID, Status: status})
	return nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	CreateFn func(context.Context, *model.Product) error
	UpdateFn func(context.Context, *model.Product) error
	DeleteFn func(context.Context, string) (*model.Product, error)
	GetFn    func(context.Context, string) (*model.Product, error)
	ListFn   func(context.Context, int, int) ([]model.Product, int64, error)

	Products []model.Product
}

// Create appends the product unless an override is configured.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	for _, p := range s.Products {
		if p.Name == product.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.Products = append(s.Products, *product)
	return nil
}

// Update replaces the stored product with the same identifier.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	for i := range s.Products {
		if s.Products[i].ID == product.ID {
			s.Products[i] = *product
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Delete removes and returns the stored product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id string) (*model.Product, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	for i := range s.Products {
		if s.Products[i].ID == id {
			removed := s.Products[i]
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return &removed, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a stored product.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for i := range s.Products {
		if s.Products[i].ID == id {
			product := s.Products[i]
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the configured page of products.
func (s *ProductRepositoryStub) List(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, offset, limit)
	}
	total := int64(len(s.Products))
	if offset >= len(s.Products) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(s.Products) {
		end = len(s.Products)
	}
	return s.Products[offset:end], total, nil
}
