package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smarttech/pkg/logger"
	"smarttech/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Store Service с использованием Gin
// Применяет Auth middleware для защиты эндпоинтов
func SetupRoutes(
	catalogHandler *CatalogHandler,
	orderHandler *OrderHandler,
	reviewHandler *ReviewHandler,
	blogHandler *BlogHandler,
	paymentHandler *PaymentHandler,
	notificationHandler *NotificationHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("store-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "store-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Categories endpoints - чтение публичное, изменения только для admin
	categories := router.Group("/categories")
	{
		categories.GET("", catalogHandler.GetAllCategories)
		categories.GET("/:id", catalogHandler.GetCategory)

		categories.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.CreateCategory)
		categories.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.UpdateCategory)
		categories.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.DeleteCategory)
	}

	// Products endpoints - чтение публичное, изменения только для admin
	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetAllProducts)
		products.GET("/search", catalogHandler.SearchProducts)
		products.GET("/:id", catalogHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetProductReviews)

		products.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.CreateProduct)
		products.PUT("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.UpdateProduct)
		products.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), catalogHandler.DeleteProduct)
	}

	// Orders endpoints - все требуют аутентификации
	orders := router.Group("/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/my-orders", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)

		// Смена статуса и удаление только для admin
		orders.PATCH("/:id", authMiddleware.RequireRole("admin"), orderHandler.UpdateOrderStatus)
		orders.DELETE("/:id", authMiddleware.RequireRole("admin"), orderHandler.DeleteOrder)
	}

	// Заказы конкретного пользователя
	users := router.Group("/users")
	users.Use(authMiddleware.Authenticate())
	{
		users.GET("/:id/orders", orderHandler.GetUserOrders)
	}

	// Reviews endpoints - чтение публичное, создание требует аутентификации
	reviews := router.Group("/reviews")
	{
		reviews.GET("/product/:id", reviewHandler.GetProductReviews)
		reviews.POST("", authMiddleware.Authenticate(), reviewHandler.CreateReview)
	}

	// Blog endpoints - чтение публичное, изменения только для admin
	posts := router.Group("/posts")
	{
		posts.GET("", blogHandler.GetPosts)
		posts.GET("/:id", blogHandler.GetPost)

		posts.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), blogHandler.CreatePost)
		posts.DELETE("/:id", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), blogHandler.DeletePost)
	}

	// Payments endpoints
	payments := router.Group("/payments")
	payments.Use(authMiddleware.Authenticate())
	{
		payments.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	}

	// Notifications - SSE поток публичный, ручная рассылка только для admin
	notifications := router.Group("/notifications")
	{
		notifications.GET("/stream", notificationHandler.Stream)
		notifications.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), notificationHandler.Broadcast)
	}

	return router
}
