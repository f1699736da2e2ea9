package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CatGatewayMock struct{ mock.Mock }

func (m *CatGatewayMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *CatGatewayMock) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type CatCacheMock struct{ mock.Mock }

func (m *CatCacheMock) Get(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *CatCacheMock) Set(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

var catalogProducts = []model.Product{
	{ID: "prod_1", Name: "Tee 1", PriceReference: "price_1", UnitAmount: 1000, Currency: "usd"},
	{ID: "prod_2", Name: "Tee 2", PriceReference: "price_2", UnitAmount: 2500, Currency: "usd"},
}

func TestCatalogUsecase_ListProducts_CacheHit(t *testing.T) {
	cache := new(CatCacheMock)
	cache.On("Get", mock.Anything).Return(catalogProducts, nil)

	gw := new(CatGatewayMock)
	uc := usecase.NewCatalogUsecase(gw, cache)

	out, err := uc.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "price_1", out.Items[0].PriceReference)

	//ヒット時はプロバイダへ行かない
	gw.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestCatalogUsecase_ListProducts_CacheMiss(t *testing.T) {
	cache := new(CatCacheMock)
	cache.On("Get", mock.Anything).Return(nil, repo.ErrCacheMiss)
	cache.On("Set", mock.Anything, catalogProducts).Return(nil)

	gw := new(CatGatewayMock)
	gw.On("ListProducts", mock.Anything).Return(catalogProducts, nil)

	uc := usecase.NewCatalogUsecase(gw, cache)

	out, err := uc.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
	cache.AssertExpectations(t)
}

func TestCatalogUsecase_ListProducts_CacheWriteFailureIsIgnored(t *testing.T) {
	cache := new(CatCacheMock)
	cache.On("Get", mock.Anything).Return(nil, repo.ErrCacheMiss)
	cache.On("Set", mock.Anything, mock.Anything).Return(assert.AnError)

	gw := new(CatGatewayMock)
	gw.On("ListProducts", mock.Anything).Return(catalogProducts, nil)

	uc := usecase.NewCatalogUsecase(gw, cache)

	out, err := uc.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
}

func TestCatalogUsecase_ListProducts_UpstreamError(t *testing.T) {
	cache := new(CatCacheMock)
	cache.On("Get", mock.Anything).Return(nil, repo.ErrCacheMiss)

	gw := new(CatGatewayMock)
	gw.On("ListProducts", mock.Anything).Return(nil, repo.ErrUpstream)

	uc := usecase.NewCatalogUsecase(gw, cache)

	_, err := uc.ListProducts(context.Background())
	assertErrContains(t, err, "payment provider error")
}

func TestCatalogUsecase_GetProduct_NotFound(t *testing.T) {
	gw := new(CatGatewayMock)
	gw.On("GetProduct", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(gw, new(CatCacheMock))

	_, err := uc.GetProduct(context.Background(), "nope")
	assertErrContains(t, err, "not found")
}

func TestCatalogUsecase_GetProduct_DecodeError(t *testing.T) {
	gw := new(CatGatewayMock)
	gw.On("GetProduct", mock.Anything, "prod_1").Return(model.Product{}, repo.ErrDecode)

	uc := usecase.NewCatalogUsecase(gw, new(CatCacheMock))

	_, err := uc.GetProduct(context.Background(), "prod_1")
	assertErrContains(t, err, "payment provider error")
}
