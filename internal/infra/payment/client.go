package payment

import (
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// NewStripeClient はシークレットキーでAPIクライアントを作る。
// キーはサーバー側だけで保持し、レスポンスに出さない。
func NewStripeClient(secretKey string) *client.API {
	// プロバイダ側のログにアプリ名を残す
	stripe.SetAppInfo(&stripe.AppInfo{Name: "shop"})

	api := &client.API{}
	api.Init(secretKey, nil)
	return api
}
