package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the handler into an echo instance with the standard
// middleware chain and the operational endpoints.
func NewRouter(handler *OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	api := e.Group("/api/v1")

	api.POST("/orders", handler.CreateOrder)
	api.GET("/orders", handler.ListOrders)
	api.POST("/orders/report", handler.ReportOrders)
	api.GET("/orders/:id", handler.GetOrder)
	api.POST("/orders/:id/status", handler.GetOrderStatus)
	api.POST("/orders/:id/activate", handler.ActivateOrder)
	api.POST("/orders/:id/redeem", handler.RedeemOrder)
	api.POST("/orders/:id/void", handler.VoidOrder)
	api.POST("/orders/:id/return", handler.ReturnOrder)
	api.POST("/token/verify", handler.VerifyToken)

	e.GET("/.well-known/jwks.json", handler.JWKS)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
