package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// CartHandler handles the authenticated cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartItemRequest represents an add-or-update cart request. The quantity
// overwrites the stored line; zero or less removes it.
type CartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// GetCart godoc
// @Summary Get the authenticated user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CartItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	items, err := h.cartService.GetCart(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddOrUpdateItem godoc
// @Summary Add or update a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CartItemRequest true "Cart line"
// @Success 201 {object} model.CartItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/cart [post]
func (h *CartHandler) AddOrUpdateItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.cartService.SetQuantity(c.Request().Context(), claims.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(err)
	}
	if item == nil {
		// quantity <= 0 removed the line
		return c.JSON(http.StatusOK, map[string]string{"message": "cart item removed"})
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/cart/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), claims.UserID, productID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "cart item removed"})
}

// ClearCart godoc
// @Summary Clear the authenticated user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if err := h.cartService.ClearCart(c.Request().Context(), claims.UserID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}
