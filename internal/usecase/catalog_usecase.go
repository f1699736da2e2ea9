package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	"shop/internal/money"
	repo "shop/internal/repository"
)

// CatalogUsecase は公開カタログの読み取り。
// 一覧はキャッシュ越し（TTL=再検証間隔）。キャッシュ障害は応答を壊さない。
type CatalogUsecase struct {
	catalog repo.CatalogGateway
	cache   repo.CatalogCache
}

func NewCatalogUsecase(catalog repo.CatalogGateway, cache repo.CatalogCache) *CatalogUsecase {
	return &CatalogUsecase{
		catalog: catalog,
		cache:   cache,
	}
}

type ProductResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	PriceReference string `json:"price_reference"`
	Price          int64  `json:"price"`
	Currency       string `json:"currency"`
	FormattedPrice string `json:"formatted_price"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// ListProducts は公開商品一覧（キャッシュ→ゲートウェイ）。
func (u *CatalogUsecase) ListProducts(ctx context.Context) (ProductListResponse, error) {
	if products, err := u.cache.Get(ctx); err == nil {
		return toProductListResponse(products), nil
	}

	products, err := u.catalog.ListProducts(ctx)
	if err != nil {
		return ProductListResponse{}, mapGatewayError(err)
	}

	// キャッシュ書き込み失敗は無視（次回また取りにいく）
	_ = u.cache.Set(ctx, products)

	return toProductListResponse(products), nil
}

// GetProduct は商品詳細。
func (u *CatalogUsecase) GetProduct(ctx context.Context, productID string) (ProductResponse, error) {
	if productID == "" {
		return ProductResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.catalog.GetProduct(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductResponse{}, mapGatewayError(err)
	}

	return toProductResponse(p), nil
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		PriceReference: p.PriceReference,
		Price:          p.UnitAmount,
		Currency:       p.Currency,
		FormattedPrice: money.MustFormat(p.UnitAmount, p.Currency),
	}
}

func toProductListResponse(products []model.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return ProductListResponse{Items: items}
}
