package model

// チェックアウト送信用の明細（金額は送らない。請求時の価格はプロバイダが正）
type CheckoutLineItem struct {
	PriceReference string `json:"price"`
	Quantity       int64  `json:"quantity"`
}

// プロバイダが作成したチェックアウトセッション
// このシステムが観測するのは Created（作成）と Completed（参照解決）のみ。
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// 購入確認画面に出す明細
type PurchasedItem struct {
	DisplayName string `json:"display_name"`
	ImageURL    string `json:"image_url"`
	Quantity    int64  `json:"quantity"`
}

// セッション参照から解決した購入結果
type PurchaseConfirmation struct {
	BuyerName string          `json:"buyer_name"`
	Items     []PurchasedItem `json:"items"`
}
