package model

import "time"

// OrderStatus describes fulfilment lifecycle. Any status may be overwritten
// with any other by an admin; no transition graph is enforced.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethodPaystack tags orders settled through the Paystack gateway.
const PaymentMethodPaystack = "Paystack"

// LineItem is a checkout-time snapshot of a purchased product. It is never
// updated after the order is materialized, even if the product changes.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Address is the shipping destination copied verbatim from checkout input.
type Address struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Street   string `json:"street"`
}

// Order is created only from a confirmed payment; there is no unpaid state.
type Order struct {
	ID               string
	Reference        string
	BuyerID          string
	LineItems        []LineItem
	ShippingAddress  Address
	TotalAmount      float64
	Status           OrderStatus
	PaymentConfirmed bool
	PaymentMethod    string
	CreatedAt        time.Time
}
