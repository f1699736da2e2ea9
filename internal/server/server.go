package server

import (
	"shop/internal/config"
	"shop/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Products *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// New はEchoを組み立てる（ミドルウェア＋ルート登録）。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//カートのクッキーを使うのでcredentials許可
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AppURL},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, h)
	return e
}

func Start(addr string, cfg config.Config, h Handlers) error {
	return New(cfg, h).Start(addr)
}
