package model

import "time"

// カートの永続化レコード（1カート=1行）
// Items は明細の順序付きJSON。保存した内容がそのまま復元されること。
type CartRecord struct {
	CartID    string    `gorm:"primaryKey;type:varchar(64)" json:"cart_id"`
	Items     []byte    `gorm:"type:jsonb;not null" json:"items"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
