package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// CheckoutUsecase はチェックアウトセッションの作成と購入確認。
// カート自体はここでは変更しない（決済完了の確認表示後にだけ空にする）。
type CheckoutUsecase struct {
	cartRepo repo.CartRepository
	gateway  repo.CheckoutGateway
}

func NewCheckoutUsecase(cartRepo repo.CartRepository, gateway repo.CheckoutGateway) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo: cartRepo,
		gateway:  gateway,
	}
}

type OrderItemInput struct {
	PriceReference string
	Quantity       int64
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type ConfirmationResponse struct {
	BuyerName string                `json:"buyer_name"`
	Items     []model.PurchasedItem `json:"items"`
}

// Checkout はクライアントが送ってきた注文明細でセッションを作る。
func (u *CheckoutUsecase) Checkout(ctx context.Context, order []OrderItemInput) (CheckoutResponse, error) {
	if len(order) == 0 {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "no products found")
	}

	items := make([]model.CheckoutLineItem, 0, len(order))
	for _, in := range order {
		if in.PriceReference == "" {
			return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		if in.Quantity < 1 {
			return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		items = append(items, model.CheckoutLineItem{
			PriceReference: in.PriceReference,
			Quantity:       in.Quantity,
		})
	}

	return u.createSession(ctx, items)
}

// CheckoutCart はサーバー側に保存されたカートのスナップショットでセッションを作る。
// 明細の順序はカートの表示順のまま。
func (u *CheckoutUsecase) CheckoutCart(ctx context.Context, cartID string) (CheckoutResponse, error) {
	if cartID == "" {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid cart")
	}

	cart, err := u.cartRepo.Load(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		cart = model.Cart{}
	} else if err != nil {
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := buildOrder(cart)
	if err != nil {
		return CheckoutResponse{}, err
	}

	return u.createSession(ctx, order)
}

// BuyNow は「いま買う」フロー。数量は常に1（数量選択はさせない）。
func (u *CheckoutUsecase) BuyNow(ctx context.Context, priceReference string) (CheckoutResponse, error) {
	if priceReference == "" {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	return u.createSession(ctx, []model.CheckoutLineItem{
		{PriceReference: priceReference, Quantity: 1},
	})
}

// ResolveSuccess はセッション参照から購入結果を解決し、カートを空にする。
// 参照が解決できない場合は repo.ErrSessionNotFound をそのまま返す
// （ハンドラ側でカタログへのリダイレクトに落とす）。
func (u *CheckoutUsecase) ResolveSuccess(ctx context.Context, cartID string, sessionID string) (ConfirmationResponse, error) {
	if sessionID == "" {
		return ConfirmationResponse{}, repo.ErrSessionNotFound
	}

	conf, err := u.gateway.ResolveSession(ctx, sessionID)
	if errors.Is(err, repo.ErrSessionNotFound) {
		return ConfirmationResponse{}, repo.ErrSessionNotFound
	}
	if err != nil {
		return ConfirmationResponse{}, mapGatewayError(err)
	}

	// 確認が取れたらカートを空にする（既に空でもno-op）
	if cartID != "" {
		if err := u.cartRepo.Clear(ctx, cartID); err != nil {
			return ConfirmationResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return ConfirmationResponse{
		BuyerName: conf.BuyerName,
		Items:     conf.Items,
	}, nil
}

// buildOrder はカートのスナップショットを送信用明細列に写す。
// 空カートはゲートウェイを呼ぶ前に弾く。
func buildOrder(cart model.Cart) ([]model.CheckoutLineItem, error) {
	if cart.IsEmpty() {
		return nil, NewHTTPError(http.StatusBadRequest, "no products found")
	}

	order := make([]model.CheckoutLineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		order = append(order, model.CheckoutLineItem{
			PriceReference: it.PriceReference,
			Quantity:       it.Quantity,
		})
	}
	return order, nil
}

func (u *CheckoutUsecase) createSession(ctx context.Context, order []model.CheckoutLineItem) (CheckoutResponse, error) {
	session, err := u.gateway.CreateSession(ctx, order)
	if err != nil {
		return CheckoutResponse{}, mapGatewayError(err)
	}

	return CheckoutResponse{CheckoutURL: session.URL}, nil
}
