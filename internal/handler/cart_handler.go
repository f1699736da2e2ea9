package handler

import (
	"context"
	"net/http"

	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
}

// /cart, /cart/items/{id} を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.CartSession())

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.POST("/items/:id/increment", h.incrementItem)
	g.POST("/items/:id/decrement", h.decrementItem)
	g.DELETE("/items/:id", h.removeItem)
	g.DELETE("", h.clearCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	cartID, ok := getCartIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	cartID, ok := getCartIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), cartID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) incrementItem(c echo.Context) error {
	return h.mutateItem(c, h.uc.IncrementItem)
}

func (h *CartHandler) decrementItem(c echo.Context) error {
	return h.mutateItem(c, h.uc.DecrementItem)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	return h.mutateItem(c, h.uc.RemoveItem)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	cartID, ok := getCartIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) mutateItem(
	c echo.Context,
	op func(ctx context.Context, cartID string, productID string) (usecase.CartResponse, error),
) error {
	cartID, ok := getCartIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart"})
	}

	productID := c.Param("id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := op(c.Request().Context(), cartID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// middlewareが入れたcart_idを取り出す
func getCartIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxCartIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
