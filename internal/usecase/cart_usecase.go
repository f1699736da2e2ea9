package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	"shop/internal/money"
	repo "shop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 変更は 復元→集約操作→保存 の一往復で行い、失敗時に中途半端な状態を残さない。
type CartUsecase struct {
	cartRepo repo.CartRepository
	catalog  repo.CatalogGateway
}

func NewCartUsecase(cartRepo repo.CartRepository, catalog repo.CatalogGateway) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

type CartItemResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Price          int64  `json:"price"`
	FormattedPrice string `json:"formatted_price"`
	Quantity       int64  `json:"quantity"`
}

type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	ItemCount      int64              `json:"item_count"`
	Total          int64              `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
}

// GetCart はカート取得（未保存なら空で返す）。
func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (CartResponse, error) {
	if cartID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid cart")
	}

	cart, err := u.cartRepo.Load(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		cart = model.Cart{}
	} else if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return buildCartResponse(cart), nil
}

// AddItem はカートに追加（同一商品は数量加算）。
// 商品はカタログから解決し、追加時点の価格・表示情報を明細に写す。
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, productID string) (CartResponse, error) {
	if cartID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid cart")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.catalog.GetProduct(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return CartResponse{}, mapGatewayError(err)
	}

	cart, err := u.cartRepo.Mutate(ctx, cartID, func(cart *model.Cart) error {
		cart.Add(model.LineItem{
			ProductID:      p.ID,
			PriceReference: p.PriceReference,
			UnitAmount:     p.UnitAmount,
			Currency:       p.Currency,
			DisplayName:    p.Name,
			ImageURL:       p.ImageURL,
		})
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return buildCartResponse(cart), nil
}

// 数量+1（存在しない明細はno-op）
func (u *CartUsecase) IncrementItem(ctx context.Context, cartID string, productID string) (CartResponse, error) {
	return u.mutate(ctx, cartID, productID, func(cart *model.Cart) {
		cart.Increment(productID)
	})
}

// 数量-1（0で明細削除。存在しない明細はno-op）
func (u *CartUsecase) DecrementItem(ctx context.Context, cartID string, productID string) (CartResponse, error) {
	return u.mutate(ctx, cartID, productID, func(cart *model.Cart) {
		cart.Decrement(productID)
	})
}

// 明細削除（2回目以降もno-op）
func (u *CartUsecase) RemoveItem(ctx context.Context, cartID string, productID string) (CartResponse, error) {
	return u.mutate(ctx, cartID, productID, func(cart *model.Cart) {
		cart.Remove(productID)
	})
}

// 全明細を空にする（購入確認の表示後に1回だけ呼ばれる。空カートでもno-op）
func (u *CartUsecase) ClearCart(ctx context.Context, cartID string) (CartResponse, error) {
	if cartID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid cart")
	}

	if err := u.cartRepo.Clear(ctx, cartID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return buildCartResponse(model.Cart{}), nil
}

func (u *CartUsecase) mutate(ctx context.Context, cartID string, productID string, op func(cart *model.Cart)) (CartResponse, error) {
	if cartID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid cart")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.Mutate(ctx, cartID, func(cart *model.Cart) error {
		op(cart)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return buildCartResponse(cart), nil
}

// 明細からCartResponseを作る（点数・合計はここで毎回再計算）
func buildCartResponse(cart model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	currency := ""

	for _, it := range cart.Items {
		if currency == "" {
			currency = it.Currency
		}

		items = append(items, CartItemResponse{
			ProductID:      it.ProductID,
			Name:           it.DisplayName,
			ImageURL:       it.ImageURL,
			Price:          it.UnitAmount,
			FormattedPrice: money.MustFormat(it.UnitAmount, it.Currency),
			Quantity:       it.Quantity,
		})
	}

	total := cart.TotalAmount()

	formattedTotal := ""
	if currency != "" {
		formattedTotal = money.MustFormat(total, currency)
	}

	return CartResponse{
		Items:          items,
		ItemCount:      cart.ItemCount(),
		Total:          total,
		FormattedTotal: formattedTotal,
	}
}

// ゲートウェイのエラー種別をHTTPへ写す
func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, repo.ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, "invalid checkout request")
	case errors.Is(err, repo.ErrDecode), errors.Is(err, repo.ErrUpstream):
		return NewHTTPError(http.StatusBadGateway, "payment provider error")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
