package payment

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// 決済プロバイダのカタログ読み取り
type StripeCatalogGateway struct {
	api *client.API
}

// DI
func NewStripeCatalogGateway(api *client.API) *StripeCatalogGateway {
	return &StripeCatalogGateway{api: api}
}

// 公開商品を default_price 込みで一覧する
func (g *StripeCatalogGateway) ListProducts(ctx context.Context) ([]model.Product, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	// price は product と別リソース。一覧は data.default_price を展開する
	params.AddExpand("data.default_price")

	products := []model.Product{}

	iter := g.api.Products.List(params)
	for iter.Next() {
		p, err := decodeProduct(iter.Product())
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := iter.Err(); err != nil {
		return nil, mapStripeError(err)
	}

	return products, nil
}

// 商品1件を default_price 込みで取得する
func (g *StripeCatalogGateway) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	params.AddExpand("default_price")

	p, err := g.api.Products.Get(productID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Code == stripe.ErrorCodeResourceMissing {
			return model.Product{}, repo.ErrNotFound
		}
		return model.Product{}, mapStripeError(err)
	}

	return decodeProduct(p)
}

// decodeProduct はプロバイダの応答を境界で明示的に変換する。
// default_price は価格IDか価格オブジェクトのどちらかで返る。展開済みで
// なければ暗黙に握りつぶさず ErrDecode にする。
func decodeProduct(p *stripe.Product) (model.Product, error) {
	if p == nil {
		return model.Product{}, fmt.Errorf("%w: nil product", repo.ErrDecode)
	}

	price := p.DefaultPrice
	if price == nil || price.ID == "" {
		return model.Product{}, fmt.Errorf("%w: product %s has no expanded default price", repo.ErrDecode, p.ID)
	}

	// 商品は複数画像を持ちうる。このカタログでは先頭1枚だけ使う
	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0]
	}

	return model.Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       imageURL,
		PriceReference: price.ID,
		UnitAmount:     price.UnitAmount,
		Currency:       string(price.Currency),
	}, nil
}
