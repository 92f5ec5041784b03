package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the API, the operational endpoints and the middleware
// stack on e.
func Register(e *echo.Echo, server *Server, jwtSecret []byte) error {
	doc, err := LoadOpenAPI()
	if err != nil {
		return err
	}
	validate, err := OpenAPIValidator(doc)
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(PrometheusMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", Authenticate(jwtSecret), validate)

	v1.GET("/orders/:orderId", server.GetOrder)
	v1.POST("/orders/:orderId/cancel", server.CancelOrder)
	v1.POST("/orders/:orderId/items/:itemId/return", server.CreateReturnRequest)
	v1.POST("/orders/:orderId/items/:itemId/replace", server.CreateReplaceRequest)

	v1.GET("/vendor/orders", server.ListVendorOrders)
	v1.GET("/vendor/orders/export", server.ExportVendorOrders)
	v1.POST("/vendor/orders/:orderId/cancel", server.VendorCancelOrder)
	v1.POST("/vendor/orders/:orderId/confirm", server.ConfirmOrder)
	v1.POST("/vendor/orders/:orderId/reject", server.RejectOrder)
	v1.PUT("/vendor/orders/:orderId/status", server.UpdateOrderStatus)

	v1.POST("/return-requests/:requestId/approve", server.ApproveReturnReplace)
	v1.POST("/return-requests/:requestId/reject", server.RejectReturnReplace)

	return nil
}
