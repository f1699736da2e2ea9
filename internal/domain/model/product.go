package model

// カタログ商品（決済プロバイダのカタログ由来）
// PriceReference は default price のID。価格は最小通貨単位。
type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	PriceReference string `json:"price_reference"`
	UnitAmount     int64  `json:"unit_amount"`
	Currency       string `json:"currency"`
}
