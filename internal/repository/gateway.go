package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var (
	// プロバイダがリクエストを拒否（明細が空など）
	ErrInvalidRequest = errors.New("invalid checkout request")
	// プロバイダ側の失敗（ネットワーク・5xx）
	ErrUpstream = errors.New("payment provider error")
	// セッション参照が解決できない
	ErrSessionNotFound = errors.New("checkout session not found")
	// プロバイダ応答が期待した形になっていない（expand漏れなど）
	ErrDecode = errors.New("provider response decode failed")
)

// 決済プロバイダのカタログ読み取り
type CatalogGateway interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, productID string) (model.Product, error)
}

// ホスト型チェックアウトのセッション作成・参照解決
// 認証情報はサーバー側だけで扱う（クライアントへは redirect URL のみ返す）。
type CheckoutGateway interface {
	CreateSession(ctx context.Context, order []model.CheckoutLineItem) (model.CheckoutSession, error)
	ResolveSession(ctx context.Context, sessionID string) (model.PurchaseConfirmation, error)
}
