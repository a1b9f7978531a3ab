package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkahs/storefront/internal/adapter/paystack"
	"github.com/darkahs/storefront/internal/checkout"
	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/server/http/dto"
)

// OrderHandler manages payment verification and order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Verify handles POST /api/order/verify. A missing reference, a payment the
// gateway rejected and undecodable metadata are all client errors; a gateway
// that cannot be reached or answers garbage is a bad gateway.
func (h *OrderHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "No reference provided"})
		return
	}

	order, _, err := h.facade.VerifyPayment(c.Request.Context(), req.Reference)
	if err != nil {
		var rejected paystack.RejectedError
		var decodeErr *checkout.DecodeError
		switch {
		case errors.Is(err, domainErrors.ErrEmptyReference):
			c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "No reference provided"})
		case errors.As(err, &rejected):
			c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Payment was not successful"})
		case errors.As(err, &decodeErr):
			c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Invalid payment metadata"})
		case errors.Is(err, paystack.ErrUnavailable), errors.Is(err, paystack.ErrBadResponse):
			c.JSON(http.StatusBadGateway, dto.Response{Success: false, Message: "Error connecting to payment gateway"})
		default:
			c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error processing order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Success: true,
		Message: "Payment verified successfully",
		Order:   dto.NewOrderResponse(order),
	})
}

// UserOrders handles POST /api/order/userorders.
func (h *OrderHandler) UserOrders(c *gin.Context) {
	buyerID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error fetching orders"})
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Success: true, Orders: dto.NewOrderResponses(orders)})
}

// List handles POST /api/order/list for the admin panel.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error fetching orders"})
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Success: true, Orders: dto.NewOrderResponses(orders)})
}

// UpdateStatus handles POST /api/order/status for the admin panel.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Order id and status are required"})
		return
	}

	err := h.facade.UpdateOrderStatus(c.Request.Context(), req.OrderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Unknown order status"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.Response{Success: false, Message: "Order not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error updating status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Status updated"})
}
