package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/api/handlers"
	"github.com/suratdiamond/storefront/internal/api/middleware"
	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
)

// Services groups everything the HTTP layer depends on
type Services struct {
	Auth      middleware.Authenticator
	Roles     middleware.RoleChecker
	Checkout  handlers.CheckoutCreator
	WhatsApp  handlers.WhatsAppOrderBuilder
	Catalog   handlers.ProductCatalog
	Products  handlers.ProductAdmin
	Orders    handlers.OrderService
	Wishlist  handlers.WishlistService
	Analytics handlers.AnalyticsService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc *Services, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireUser := middleware.RequireUser(svc.Auth, logger)

	// Checkout, mounted at the edge-function path the storefront already calls
	createCheckout := handlers.HandleCreateCheckout(svc.Checkout, logger)
	router.POST("/functions/v1/create-checkout", createCheckout)
	router.OPTIONS("/functions/v1/create-checkout", preflight)

	v1 := router.Group("/v1")
	{
		v1.POST("/checkout/session", createCheckout)
		v1.OPTIONS("/checkout/session", preflight)
		v1.POST("/checkout/whatsapp", handlers.HandleWhatsAppOrder(svc.WhatsApp, logger))

		v1.GET("/products", handlers.HandleListProducts(svc.Catalog, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(svc.Catalog, logger))

		v1.POST("/analytics/events",
			middleware.OptionalUser(svc.Auth, logger),
			handlers.HandleTrackEvent(svc.Analytics, logger),
		)

		// Customer routes (require authentication)
		customerRoutes := v1.Group("")
		customerRoutes.Use(requireUser)
		{
			customerRoutes.GET("/orders", handlers.HandleListMyOrders(svc.Orders, logger))
			customerRoutes.GET("/wishlist", handlers.HandleListWishlist(svc.Wishlist, logger))
			customerRoutes.POST("/wishlist", handlers.HandleAddToWishlist(svc.Wishlist, logger))
			customerRoutes.DELETE("/wishlist/:productId", handlers.HandleRemoveFromWishlist(svc.Wishlist, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(requireUser, middleware.RequireRole(svc.Roles, domain.RoleAdmin, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(svc.Orders, logger))
			adminRoutes.PATCH("/orders/:id/status", handlers.HandleUpdateOrderStatus(svc.Orders, logger))

			adminRoutes.GET("/products", handlers.HandleAdminListProducts(svc.Products, logger))
			adminRoutes.POST("/products", handlers.HandleCreateProduct(svc.Products, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(svc.Products, logger))
			adminRoutes.PATCH("/products/:id/active", handlers.HandleSetProductActive(svc.Products, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(svc.Products, logger))

			adminRoutes.GET("/analytics", handlers.HandleAnalyticsSummary(svc.Analytics, logger))
		}
	}

	return router
}

// preflight is reached only if CORS did not already answer the request
func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
