package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sessioncart/internal/handler"
	"sessioncart/internal/middleware"
)

func RegisterRoutes(
	e *echo.Echo,
	sessions *middleware.SessionManager,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authH.RegisterRoutes(e.Group("/auth", sessions.Middleware()))
	cartH.RegisterRoutes(e.Group("/cart", sessions.Middleware()))
}
