package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyReference     = errors.New("empty payment reference")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrItemNotInCart      = errors.New("item not found in cart")
)
