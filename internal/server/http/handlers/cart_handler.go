package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/server/http/dto"
)

// CartHandler manages the authenticated user's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Item id and size are required"})
		return
	}

	cart, err := h.facade.CartAdd(c.Request.Context(), CurrentUserID(c), req.ItemID, req.Size)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Message: "Added to cart", CartData: cart})
}

// Update handles POST /api/cart/update.
func (h *CartHandler) Update(c *gin.Context) {
	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Item id, size and quantity are required"})
		return
	}

	cart, err := h.facade.CartUpdate(c.Request.Context(), CurrentUserID(c), req.ItemID, req.Size, *req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Message: "Cart updated", CartData: cart})
}

// Get handles POST /api/cart/get.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.CartGet(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, CartData: cart})
}

// Clear handles POST /api/cart/clear.
func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.facade.CartClear(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Message: "Cart cleared", CartData: cart})
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrItemNotInCart):
		c.JSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Item is not in the cart"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Response{Success: false, Message: "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, dto.Response{Success: false, Message: "Error updating cart"})
	}
}
