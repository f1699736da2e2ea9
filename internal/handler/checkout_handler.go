package handler

import (
	"errors"
	"net/http"

	"shop/internal/middleware"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutOrderItem struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

// order（カートのスナップショット）か price（buy now）のどちらか
type CheckoutRequest struct {
	Order []CheckoutOrderItem `json:"order"`
	Price string              `json:"price"`
}

// POST以外はEchoが405を返す
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	cs := middleware.CartSession()

	e.POST("/checkout", h.checkout, cs)
	e.POST("/cart/checkout", h.checkoutCart, cs)
	e.GET("/checkout/success", h.success, cs)
}

// チェックアウトセッション作成（成功で決済ページへのURLを返す）
func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	var (
		out usecase.CheckoutResponse
		err error
	)

	switch {
	case len(req.Order) > 0:
		order := make([]usecase.OrderItemInput, 0, len(req.Order))
		for _, it := range req.Order {
			order = append(order, usecase.OrderItemInput{
				PriceReference: it.Price,
				Quantity:       it.Quantity,
			})
		}
		out, err = h.uc.Checkout(c.Request().Context(), order)

	case req.Price != "":
		// buy nowは数量1固定
		out, err = h.uc.BuyNow(c.Request().Context(), req.Price)

	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no products found"})
	}

	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// サーバー側カートのスナップショットでセッション作成
func (h *CheckoutHandler) checkoutCart(c echo.Context) error {
	cartID, ok := getCartIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart"})
	}

	out, err := h.uc.CheckoutCart(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// 購入確認。session_idが無い・解決できない場合はカタログへ戻す。
func (h *CheckoutHandler) success(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	cartID, _ := getCartIDFromContext(c)

	out, err := h.uc.ResolveSuccess(c.Request().Context(), cartID, sessionID)
	if errors.Is(err, repo.ErrSessionNotFound) {
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
