package router

import (
	"github.com/bigsofa/bigsofa-backend/config"
	"github.com/bigsofa/bigsofa-backend/internal/app/controller"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	catalogController        *controller.CatalogController
	cartController           *controller.CartController
	favoriteController       *controller.FavoriteController
	orderController          *controller.OrderController
	adminAuthController      *controller.AdminAuthController
	adminFurnitureController *controller.AdminFurnitureController
	adminOrderController     *controller.AdminOrderController
	sessionMiddleware        *middleware.SessionMiddleware
	adminAuthMiddleware      *middleware.AdminAuthMiddleware
	config                   *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	favoriteController *controller.FavoriteController,
	orderController *controller.OrderController,
	adminAuthController *controller.AdminAuthController,
	adminFurnitureController *controller.AdminFurnitureController,
	adminOrderController *controller.AdminOrderController,
	sessionMiddleware *middleware.SessionMiddleware,
	adminAuthMiddleware *middleware.AdminAuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:        catalogController,
		cartController:           cartController,
		favoriteController:       favoriteController,
		orderController:          orderController,
		adminAuthController:      adminAuthController,
		adminFurnitureController: adminFurnitureController,
		adminOrderController:     adminOrderController,
		sessionMiddleware:        sessionMiddleware,
		adminAuthMiddleware:      adminAuthMiddleware,
		config:                   cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BIGSOFA API is running",
		})
	})

	// Serve locally stored images
	router.Static(r.config.Uploads.PublicPath, r.config.Uploads.Dir)

	api := router.Group("/api")
	{
		api.GET("/categories", r.catalogController.GetCategories)

		furniture := api.Group("/furniture")
		{
			furniture.GET("", r.catalogController.GetItems)
			furniture.GET("/:id", r.catalogController.GetItem)
		}

		cart := api.Group("/cart", r.sessionMiddleware.Resolve())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:itemId", r.cartController.UpdateCartLine)
			cart.DELETE("/:itemId", r.cartController.RemoveCartLine)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/checkout", r.cartController.Checkout)
		}

		favorites := api.Group("/favorites", r.sessionMiddleware.Resolve())
		{
			favorites.GET("", r.favoriteController.GetFavorites)
			favorites.POST("/:itemId/toggle", r.favoriteController.ToggleFavorite)
		}

		api.POST("/orders", r.orderController.CreateOrder)

		admin := api.Group("/admin")
		{
			admin.POST("/login", r.adminAuthController.Login)

			protected := admin.Group("", r.adminAuthMiddleware.Authenticate())
			{
				protected.GET("/furniture", r.adminFurnitureController.ListItems)
				protected.POST("/furniture", r.adminFurnitureController.CreateItem)
				protected.PUT("/furniture/:id", r.adminFurnitureController.UpdateItem)
				protected.DELETE("/furniture/:id", r.adminFurnitureController.DeleteItem)

				protected.GET("/orders", r.adminOrderController.ListOrders)
				protected.GET("/orders/export", r.adminOrderController.ExportOrders)
				protected.GET("/orders/ws", r.adminOrderController.OrderFeed)
				protected.GET("/orders/:id", r.adminOrderController.GetOrder)
				protected.PATCH("/orders/:id/status", r.adminOrderController.UpdateStatus)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID, X-Admin-Token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
