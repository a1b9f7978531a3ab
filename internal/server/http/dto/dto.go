// Package dto defines the JSON shapes exchanged with storefront clients.
package dto

import (
	"time"

	"github.com/darkahs/storefront/internal/domain/model"
)

// Response is the common envelope for status-only replies.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

type VerifyRequest struct {
	Reference string `json:"reference"`
}

type StatusUpdateRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID            string           `json:"id"`
	Items         []model.LineItem `json:"items"`
	Amount        float64          `json:"amount"`
	Address       model.Address    `json:"address"`
	Status        string           `json:"status"`
	PaymentMethod string           `json:"paymentMethod"`
	Payment       bool             `json:"payment"`
	Date          time.Time        `json:"date"`
}

// NewOrderResponse maps a domain order onto the wire shape.
func NewOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		Items:         o.LineItems,
		Amount:        o.TotalAmount,
		Address:       o.ShippingAddress,
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		Payment:       o.PaymentConfirmed,
		Date:          o.CreatedAt,
	}
}

// NewOrderResponses maps a slice of orders, never returning nil so the
// JSON field encodes as [] rather than null.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

type OrderListResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Orders  []OrderResponse `json:"orders"`
}

type VerifyResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type CartAddRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Size   string `json:"size" binding:"required"`
}

type CartUpdateRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

type CartResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message,omitempty"`
	CartData model.Cart `json:"cartData"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Sizes       []string  `json:"sizes"`
	Bestseller  bool      `json:"bestseller"`
	Date        time.Time `json:"date"`
}

// NewProductResponse maps a domain product onto the wire shape.
func NewProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       p.Sizes,
		Bestseller:  p.Bestseller,
		Date:        p.CreatedAt,
	}
}

type ProductListResponse struct {
	Success  bool              `json:"success"`
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type SingleProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type ProductItemResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product ProductResponse `json:"product"`
}
