package model

// カートの明細（表示用メタデータ込み）
// PriceReference は決済プロバイダ側の価格ID（商品と1:1）。
type LineItem struct {
	ProductID      string `json:"product_id"`
	PriceReference string `json:"price_reference"`
	UnitAmount     int64  `json:"unit_amount"`
	Currency       string `json:"currency"`
	DisplayName    string `json:"display_name"`
	ImageURL       string `json:"image_url"`
	Quantity       int64  `json:"quantity"`
}

// 小計（数量×単価）
func (it LineItem) Subtotal() int64 {
	return it.Quantity * it.UnitAmount
}
