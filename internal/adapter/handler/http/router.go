package http

import (
	"net/http"

	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.App,
	logger *zap.Logger,
	tokenService port.TokenService,
	paymentHandler *PaymentHandler,
	adminHandler *AdminHandler,
	orderHandler *OrderHandler,
	productHandler *ProductHandler) (*Router, error) {

	if conf.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.ContextWithFallback = true
	router.Use(requestLogger(logger), gin.Recovery())

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "storefront payment API is running")
	})

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := NewHandler(logger.Named("auth"))
	admin := []gin.HandlerFunc{authCheck(tokenService, guard), requireRole(domain.RoleAdmin, guard)}

	api := router.Group("/api")
	{
		payment := api.Group("/payment")
		{
			payment.POST("/order", paymentHandler.CreateOrder)
			payment.POST("/verify", paymentHandler.VerifyPayment)
			payment.POST("/webhook", paymentHandler.Webhook)
		}

		api.POST("/admin/login", adminHandler.Login)

		orders := api.Group("/orders", admin...)
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		}

		products := api.Group("/products")
		{
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", append(admin, productHandler.CreateProduct)...)
			products.PUT("/:id", append(admin, productHandler.UpdateProduct)...)
			products.DELETE("/:id", append(admin, productHandler.DeleteProduct)...)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
