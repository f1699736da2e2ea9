package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CartCookieName = "cart_id"
	CtxCartIDKey   = "cart_id" // string
)

// カート識別用のクッキーを保証するミドルウェア。
// 認証ではない（中身は不透明なUUIDだけ）。
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cartID := ""

			if cookie, err := c.Cookie(CartCookieName); err == nil {
				cartID = cookie.Value
			}

			//無ければ発行してセット
			if cartID == "" {
				cartID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CartCookieName,
					Value:    cartID,
					Path:     "/",
					MaxAge:   60 * 60 * 24 * 30,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxCartIDKey, cartID)
			return next(c)
		}
	}
}
