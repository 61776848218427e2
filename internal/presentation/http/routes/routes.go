package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/config"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/handler"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/middleware"
	"github.com/mithaas/sweetshop-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Branch    *handler.BranchHandler
	Item      *handler.ItemHandler
	Occasion  *handler.OccasionHandler
	User      *handler.UserHandler
	Changelog *handler.ChangelogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	BranchRepo repository.BranchRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewBranchRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})

		registerOrderRoutes(protected, h, deps, rateLimiter)
		registerCatalogRoutes(protected, h)
		registerAdminRoutes(protected, h)
	}

	return router
}

// registerOrderRoutes registers all branch-scoped routes. The branch
// middleware resolves :branch and enforces staff scoping before any handler
// runs; the rate limiter keys off the resolved branch code.
func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, rl *middleware.BranchRateLimiter) {
	orders := protected.Group("/orders/:branch")
	orders.Use(middleware.BranchAccessMiddleware(deps.BranchRepo))
	orders.Use(rl.Middleware())
	{
		orders.POST("", h.Order.Create)
		orders.POST("/draft", h.Order.AutosaveDraft)
		orders.GET("", h.Order.List)
		orders.GET("/last-number/:prefix", h.Order.LastNumber)
		orders.GET("/check-number", h.Order.CheckNumber)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/pay", h.Order.RecordPayment)
	}

	changelog := protected.Group("/changelog/:branch")
	changelog.Use(middleware.BranchAccessMiddleware(deps.BranchRepo))
	{
		changelog.GET("", h.Changelog.List)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	branches := protected.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.GET("/:id", h.Branch.Get)
		branches.POST("", middleware.RequireAdmin(), h.Branch.Create)
		branches.PUT("/:id", middleware.RequireAdmin(), h.Branch.Update)
		branches.DELETE("/:id", middleware.RequireAdmin(), h.Branch.Delete)
	}

	items := protected.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", middleware.RequireAdmin(), h.Item.Delete)
	}

	occasions := protected.Group("/occasions")
	{
		occasions.GET("", h.Occasion.List)
		occasions.POST("", middleware.RequireAdmin(), h.Occasion.Create)
		occasions.PUT("/:id", middleware.RequireAdmin(), h.Occasion.Update)
		occasions.DELETE("/:id", middleware.RequireAdmin(), h.Occasion.Delete)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
