package routes

import (
	"time"

	"loja-backend/handlers"
	"loja-backend/mercadopago"
	"loja-backend/middleware"
	"loja-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, gateway *mercadopago.Client) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	couponHandler := &handlers.CouponHandler{DB: db}
	cartHandler := &handlers.CartHandler{}
	orderHandler := &handlers.OrderHandler{DB: db}
	checkoutHandler := &handlers.CheckoutHandler{DB: db, Gateway: gateway, Stash: utils.Checkouts}
	webhookHandler := &handlers.WebhookHandler{DB: db, Payments: gateway, Stash: utils.Checkouts, Mail: &utils.SMTPMailer{}}

	// Payment endpoints get a tighter limit than the rest of the API.
	checkoutLimiter := middleware.NewRateLimiter(10, time.Minute)
	webhookLimiter := middleware.NewRateLimiter(60, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Public product routes
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/reviews", reviewHandler.GetProductReviews)

		// Public category routes
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)

		// Cookie-backed cart; no login required
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart", cartHandler.MutateCart)
		api.PUT("/cart", cartHandler.ReplaceCart)

		// Coupon preview
		api.POST("/coupons/validate", couponHandler.ValidateCoupon)

		// Checkout and payment notifications
		api.POST("/checkout", checkoutLimiter.Middleware(), checkoutHandler.CreatePreference)
		api.POST("/webhooks/mercadopago", webhookLimiter.Middleware(), webhookHandler.HandleNotification)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		// Reviews
		protected.POST("/reviews", reviewHandler.CreateReview)
		protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		// Wishlist
		protected.GET("/wishlist", wishlistHandler.GetWishlist)
		protected.POST("/wishlist", wishlistHandler.AddToWishlist)
		protected.DELETE("/wishlist/:id", wishlistHandler.RemoveFromWishlist)

		// Order routes
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Coupon management
		admin.GET("/coupons", couponHandler.GetCoupons)
		admin.POST("/coupons", couponHandler.CreateCoupon)
		admin.PUT("/coupons/:id", couponHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", couponHandler.DeleteCoupon)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
