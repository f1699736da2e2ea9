package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カートの永続化（保存・復元）だけを約束。
// 保存した明細列は順序・数量込みでそのまま復元されること。
type CartRepository interface {
	// 無ければ ErrNotFound（呼び出し側は空カート扱い）
	Load(ctx context.Context, cartID string) (model.Cart, error)
	Save(ctx context.Context, cartID string, cart model.Cart) error
	// 行ロックの中で Load→変更→Save を直列化する
	Mutate(ctx context.Context, cartID string, fn func(cart *model.Cart) error) (model.Cart, error)
	Clear(ctx context.Context, cartID string) error
}
