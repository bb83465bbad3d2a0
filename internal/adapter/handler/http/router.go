package http

import (
	"github.com/freshmart/backend/internal/adapter/config"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	notificationHandler *NotificationHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	metrics := newServerMetrics()
	router.Use(metrics.middleware())
	router.GET("/metrics", metricsHandler())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:order", orderHandler.GetOrder)
			orders.POST("/:order/checkout", orderHandler.Checkout)
			orders.PATCH("/:order/status", orderHandler.UpdateOrderStatus)
			orders.PUT("/:order/delivery", orderHandler.UpdateDeliveryInfo)
			orders.POST("/:order/cancel", orderHandler.CancelOrder)
			orders.GET("/:order/track", orderHandler.TrackOrder)
			orders.POST("/:order/seller", orderHandler.AssignSeller)
			orders.POST("/:order/driver", orderHandler.AssignDriver)

			orders.GET("/:order/payment", paymentHandler.GetPaymentByOrder)
			orders.POST("/:order/refund", paymentHandler.RefundPayment)
		}

		notifications := api.Group("/notifications")
		{
			notifications.Use(authCheck(tokenService))
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread", notificationHandler.UnreadCount)
			notifications.POST("/:notification/read", notificationHandler.MarkAsRead)
			notifications.GET("/stream", notificationHandler.Stream)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
