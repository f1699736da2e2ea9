package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrCacheMiss = errors.New("cache miss")

// カタログ一覧のキャッシュ（TTL=再検証間隔）
type CatalogCache interface {
	Get(ctx context.Context) ([]model.Product, error)
	Set(ctx context.Context, products []model.Product) error
}
