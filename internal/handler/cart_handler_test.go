package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/middleware"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// インメモリのCartRepository（ハンドラ経由の一連の流れ用）
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]model.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]model.Cart{}}
}

func (m *memCartRepo) Load(ctx context.Context, cartID string) (model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	return c, nil
}

func (m *memCartRepo) Save(ctx context.Context, cartID string, cart model.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = cart
	return nil
}

func (m *memCartRepo) Mutate(ctx context.Context, cartID string, fn func(cart *model.Cart) error) (model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := m.carts[cartID]
	if err := fn(&cart); err != nil {
		return model.Cart{}, err
	}
	m.carts[cartID] = cart
	return cart, nil
}

func (m *memCartRepo) Clear(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return nil
	}
	cart.Clear()
	m.carts[cartID] = cart
	return nil
}

type CartHCatalogMock struct{ mock.Mock }

func (m *CartHCatalogMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *CartHCatalogMock) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func newCartEcho(cartRepo repo.CartRepository, catalog repo.CatalogGateway) *echo.Echo {
	e := echo.New()
	uc := usecase.NewCartUsecase(cartRepo, catalog)
	handler.NewCartHandler(uc).RegisterRoutes(e)
	return e
}

func doCart(t *testing.T, e *echo.Echo, method string, path string, body string) (*httptest.ResponseRecorder, usecase.CartResponse) {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: middleware.CartCookieName, Value: "cart-1"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out usecase.CartResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("json.Unmarshal(CartResponse) failed: %v body=%s", err, rec.Body.String())
		}
	}
	return rec, out
}

func TestCartHandler_GetCart_InitiallyEmpty(t *testing.T) {
	e := newCartEcho(newMemCartRepo(), new(CartHCatalogMock))

	rec, out := doCart(t, e, http.MethodGet, "/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.ItemCount)
}

func TestCartHandler_AddIncrementDecrementRemove(t *testing.T) {
	catalog := new(CartHCatalogMock)
	catalog.On("GetProduct", mock.Anything, "prod_1").Return(model.Product{
		ID:             "prod_1",
		Name:           "Tee 1",
		PriceReference: "price_1",
		UnitAmount:     1000,
		Currency:       "usd",
	}, nil)

	e := newCartEcho(newMemCartRepo(), catalog)

	//追加2回→数量2
	rec, out := doCart(t, e, http.MethodPost, "/cart/items", `{"product_id":"prod_1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, out = doCart(t, e, http.MethodPost, "/cart/items", `{"product_id":"prod_1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.ItemCount)
	assert.Equal(t, int64(2000), out.Total)

	//+1
	rec, out = doCart(t, e, http.MethodPost, "/cart/items/prod_1/increment", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), out.ItemCount)

	//-1
	rec, out = doCart(t, e, http.MethodPost, "/cart/items/prod_1/decrement", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), out.ItemCount)

	//削除→空
	rec, out = doCart(t, e, http.MethodDelete, "/cart/items/prod_1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Items)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	catalog := new(CartHCatalogMock)
	catalog.On("GetProduct", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	e := newCartEcho(newMemCartRepo(), catalog)

	rec, _ := doCart(t, e, http.MethodPost, "/cart/items", `{"product_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid product_id")
}

func TestCartHandler_ClearCart(t *testing.T) {
	catalog := new(CartHCatalogMock)
	catalog.On("GetProduct", mock.Anything, "prod_1").Return(model.Product{
		ID:             "prod_1",
		PriceReference: "price_1",
		UnitAmount:     1000,
		Currency:       "usd",
	}, nil)

	e := newCartEcho(newMemCartRepo(), catalog)

	rec, _ := doCart(t, e, http.MethodPost, "/cart/items", `{"product_id":"prod_1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out := doCart(t, e, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Items)

	//空カートへのClearもno-op
	rec, out = doCart(t, e, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Items)
}
