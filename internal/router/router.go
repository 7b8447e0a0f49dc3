// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/shoplist-backend/internal/config"
	"github.com/javajoker/shoplist-backend/internal/database"
	"github.com/javajoker/shoplist-backend/internal/handlers"
	"github.com/javajoker/shoplist-backend/internal/middleware"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, notifier services.Notifier) *gin.Engine {
	// Initialize services
	store := repository.NewStore(db)
	userService := services.NewUserService(store)
	shoppingListService := services.NewShoppingListService(store, notifier)
	listProductService := services.NewListProductService(store, notifier)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService)
	listProductHandler := handlers.NewListProductHandler(listProductService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.I18nMiddleware())
	if cfg.Server.RateLimit {
		r.Use(middleware.GeneralRateLimit())
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if err := database.Ping(c.Request.Context(), db); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	var deriveLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.Server.RateLimit {
		deriveLimit = middleware.DeriveRateLimit()
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// User routes
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", middleware.OptionalAuth(), userHandler.GetUser)
		}

		// Shopping list routes
		lists := v1.Group("/shopping-lists")
		lists.Use(middleware.AuthRequired())
		{
			lists.GET("", shoppingListHandler.GetShoppingLists)
			lists.POST("", shoppingListHandler.CreateShoppingList)
			lists.POST("/from-pending", deriveLimit, shoppingListHandler.CreateFromPendingProducts)
			lists.POST("/from-lists", deriveLimit, shoppingListHandler.CreateFromShoppingLists)
			lists.GET("/:id", shoppingListHandler.GetShoppingList)
			lists.PATCH("/:id", shoppingListHandler.UpdateShoppingList)
			lists.DELETE("/:id", shoppingListHandler.DeleteShoppingList)
			lists.POST("/:id/shares", shoppingListHandler.ShareShoppingList)
			lists.DELETE("/:id/shares/:userId", shoppingListHandler.UnshareShoppingList)
			lists.GET("/:id/products", listProductHandler.GetListProducts)
			lists.POST("/:id/products", listProductHandler.CreateListProduct)
		}

		// List product routes
		products := v1.Group("/list-products")
		products.Use(middleware.AuthRequired())
		{
			products.PATCH("/:id", listProductHandler.UpdateListProduct)
			products.DELETE("/:id", listProductHandler.DeleteListProduct)
			products.POST("/:id/toggle", listProductHandler.TogglePurchased)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/shopping-lists", shoppingListHandler.GetAllShoppingLists)
		}
	}

	return r
}
