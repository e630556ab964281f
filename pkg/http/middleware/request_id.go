package middleware

import (
	"TradeMind/pkg/id"

	"github.com/labstack/echo/v4"
)

// RequestID tags every response with a ULID, reusing the caller's id when sent.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = id.New()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}
