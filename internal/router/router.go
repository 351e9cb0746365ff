package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/config"
	"github.com/pedefood/pedefood-backend/internal/app/controller"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	addressController      *controller.AddressController
	restaurantController   *controller.RestaurantController
	productController      *controller.ProductController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	verificationController *controller.VerificationController
	trackingController     *controller.TrackingController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	addressController *controller.AddressController,
	restaurantController *controller.RestaurantController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	verificationController *controller.VerificationController,
	trackingController *controller.TrackingController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		addressController:      addressController,
		restaurantController:   restaurantController,
		productController:      productController,
		cartController:         cartController,
		orderController:        orderController,
		verificationController: verificationController,
		trackingController:     trackingController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
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
			"message": "PedeFood API is running",
		})
	})

	// Verification relay. These routes keep a flat /api prefix and a
	// plain response shape for compatibility with existing clients.
	api := router.Group("/api")
	{
		api.POST("/send-verification", r.verificationController.SendVerification)
		api.POST("/verify-code", r.verificationController.VerifyCode)
		api.GET("/health", r.verificationController.Health)
	}

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.GetAddresses)
			addresses.GET("/primary", r.addressController.GetPrimaryAddress)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
			addresses.PUT("/:id/primary", r.addressController.SetPrimaryAddress)
		}

		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", r.restaurantController.GetRestaurants)
			restaurants.GET("/:id", r.restaurantController.GetRestaurant)
			restaurants.GET("/:id/products", r.productController.GetMenu)

			restaurants.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.restaurantController.CreateRestaurant,
			)
			restaurants.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.restaurantController.UpdateRestaurant,
			)
			restaurants.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.restaurantController.DeleteRestaurant,
			)
			restaurants.POST("/:id/products",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.productController.CreateProduct,
			)
		}

		v1.GET("/my-restaurants",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("restaurant", "admin"),
			r.restaurantController.GetMyRestaurants,
		)

		products := v1.Group("/products")
		{
			products.GET("/:id", r.productController.GetProduct)

			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("restaurant", "admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id/increase", r.cartController.IncreaseQuantity)
			cart.PUT("/:id/decrease", r.cartController.DecreaseQuantity)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			// the tracking socket authenticates via ?token= because
			// browsers cannot set headers on WebSocket upgrades
			orders.GET("/track", r.trackingController.TrackOrders)
			orders.GET("/:number", r.orderController.GetOrder)
		}

		v1.POST("/checkout",
			r.authMiddleware.Authenticate(),
			r.orderController.Checkout,
		)

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
