package payment

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// ホスト型チェックアウトのセッション作成・参照解決
type StripeCheckoutGateway struct {
	api *client.API
	// 決済完了/キャンセル後に戻るフロントのURL
	appURL string
}

// DI
func NewStripeCheckoutGateway(api *client.API, appURL string) *StripeCheckoutGateway {
	return &StripeCheckoutGateway{api: api, appURL: appURL}
}

// セッションを作成して決済ページのURLを返す。
// ローカルの状態遷移はしない（完了はあとで参照解決して知る）。
func (g *StripeCheckoutGateway) CreateSession(ctx context.Context, order []model.CheckoutLineItem) (model.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order))
	for _, it := range order {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(it.PriceReference),
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		// {CHECKOUT_SESSION_ID} はプロバイダが埋める（確認画面で参照解決に使う）
		SuccessURL: stripe.String(g.appURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.appURL + "/"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return model.CheckoutSession{}, mapStripeError(err)
	}

	return model.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// セッション参照から購入者名と購入明細を解決する
func (g *StripeCheckoutGateway) ResolveSession(ctx context.Context, sessionID string) (model.PurchaseConfirmation, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price.product")

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Code == stripe.ErrorCodeResourceMissing {
			return model.PurchaseConfirmation{}, repo.ErrSessionNotFound
		}
		return model.PurchaseConfirmation{}, mapStripeError(err)
	}

	return decodeConfirmation(s)
}

// decodeConfirmation も境界の明示的な変換。
// line_items と price.product の展開が無い応答は ErrDecode。
func decodeConfirmation(s *stripe.CheckoutSession) (model.PurchaseConfirmation, error) {
	if s == nil || s.LineItems == nil {
		return model.PurchaseConfirmation{}, fmt.Errorf("%w: session without expanded line_items", repo.ErrDecode)
	}

	buyerName := ""
	if s.CustomerDetails != nil {
		buyerName = s.CustomerDetails.Name
	}

	items := make([]model.PurchasedItem, 0, len(s.LineItems.Data))
	for _, li := range s.LineItems.Data {
		if li.Price == nil || li.Price.Product == nil {
			return model.PurchaseConfirmation{}, fmt.Errorf("%w: line item without expanded product", repo.ErrDecode)
		}

		p := li.Price.Product
		imageURL := ""
		if len(p.Images) > 0 {
			imageURL = p.Images[0]
		}

		items = append(items, model.PurchasedItem{
			DisplayName: p.Name,
			ImageURL:    imageURL,
			Quantity:    li.Quantity,
		})
	}

	return model.PurchaseConfirmation{BuyerName: buyerName, Items: items}, nil
}

// プロバイダのエラーを内部のエラー種別へ寄せる
func mapStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Type == stripe.ErrorTypeInvalidRequest {
		return fmt.Errorf("%w: %s", repo.ErrInvalidRequest, se.Msg)
	}
	return fmt.Errorf("%w: %v", repo.ErrUpstream, err)
}
