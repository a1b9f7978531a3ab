package model

import "time"

// User represents a registered storefront customer. The cart is owned
// exclusively by the user record.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Cart         Cart
	CreatedAt    time.Time
}
