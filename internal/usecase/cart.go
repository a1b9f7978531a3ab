package usecase

import (
	"context"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/domain/repository"
)

// CartUseCase mutates the cart embedded in the user record. Every mutation
// reads the current cart and writes the whole snapshot back.
type CartUseCase struct {
	users repository.UserRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(users repository.UserRepository) *CartUseCase {
	return &CartUseCase{users: users}
}

// Add increments the quantity for the product/size pair.
func (u *CartUseCase) Add(ctx context.Context, userID, productID, size string) (model.Cart, error) {
	cart, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Add(productID, size)
	if err := u.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Update overwrites the quantity for an existing product/size pair. Setting
// zero keeps the entry structurally but removes it from quantity totals.
func (u *CartUseCase) Update(ctx context.Context, userID, productID, size string, quantity int) (model.Cart, error) {
	cart, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.Has(productID, size) {
		return nil, domainErrors.ErrItemNotInCart
	}
	cart.SetQuantity(productID, size, quantity)
	if err := u.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get returns the user's current cart.
func (u *CartUseCase) Get(ctx context.Context, userID string) (model.Cart, error) {
	return u.load(ctx, userID)
}

// Clear replaces the cart with an empty snapshot.
func (u *CartUseCase) Clear(ctx context.Context, userID string) (model.Cart, error) {
	cart := model.NewCart()
	if err := u.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *CartUseCase) load(ctx context.Context, userID string) (model.Cart, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return model.NewCart(), nil
	}
	return user.Cart, nil
}
