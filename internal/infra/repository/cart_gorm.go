package repository

import (
	"context"
	"encoding/json"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 保存済みカートを復元（無ければ ErrNotFound）
func (r *CartGormRepository) Load(ctx context.Context, cartID string) (model.Cart, error) {
	var rec model.CartRecord

	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}

	return decodeItems(rec.Items)
}

// カート全体を保存（同一cart_idは上書き）
func (r *CartGormRepository) Save(ctx context.Context, cartID string, cart model.Cart) error {
	return r.save(r.db.WithContext(ctx), cartID, cart)
}

// Mutate は行ロックの中で 復元→変更→保存 を行う。
// 変更操作の直列化はここで保証する（「数量0以下は保存しない」を壊さないため）。
func (r *CartGormRepository) Mutate(ctx context.Context, cartID string, fn func(cart *model.Cart) error) (model.Cart, error) {
	var out model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.CartRecord

		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ?", cartID).
			First(&rec).Error

		var cart model.Cart
		switch {
		case findErr == nil:
			decoded, err := decodeItems(rec.Items)
			if err != nil {
				return err
			}
			cart = decoded
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// 初回は空カートから
			cart = model.Cart{}
		default:
			return findErr
		}

		if err := fn(&cart); err != nil {
			return err
		}

		if err := r.save(tx, cartID, cart); err != nil {
			return err
		}

		out = cart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return out, nil
}

// 全明細を空にする（レコードが無ければno-op）
func (r *CartGormRepository) Clear(ctx context.Context, cartID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartRecord{}).
		Where("cart_id = ?", cartID).
		Update("items", emptyItemsJSON)

	return res.Error
}

const emptyItemsJSON = "[]"

func (r *CartGormRepository) save(db *gorm.DB, cartID string, cart model.Cart) error {
	items := cart.Items
	if items == nil {
		items = []model.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	rec := model.CartRecord{
		CartID: cartID,
		Items:  data,
	}

	// upsert（cart_id一意）
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&rec).Error
}

// 保存時と同じ順序・数量で復元する
func decodeItems(data []byte) (model.Cart, error) {
	if len(data) == 0 {
		return model.Cart{}, nil
	}

	var items []model.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return model.Cart{}, err
	}
	return model.NewCart(items), nil
}
