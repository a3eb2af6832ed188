package router

import (
	"time"

	"github.com/baikov/orders-backend/internal/config"
	"github.com/baikov/orders-backend/internal/handler"
	"github.com/baikov/orders-backend/internal/infra"
	"github.com/baikov/orders-backend/internal/middleware"
	"github.com/baikov/orders-backend/internal/repository"
	"github.com/baikov/orders-backend/internal/service"
	"github.com/baikov/orders-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	files := infra.NewFileStore(cfg.FileStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	tradePointRepo := repository.NewTradePointRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerProductRepo := repository.NewCustomerProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	customerSvc := service.NewCustomerService(customerRepo, orderRepo)
	tradePointSvc := service.NewTradePointService(tradePointRepo, customerRepo)
	productSvc := service.NewProductService(productRepo)
	customerProductSvc := service.NewCustomerProductService(customerProductRepo, productRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	orderSvc := service.NewOrderService(orderRepo, customerRepo, files, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	tradePointsH := handler.NewTradePointsHandler(tradePointSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customerProductsH := handler.NewCustomerProductsHandler(customerProductSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Roles: manager, admin — declared per-endpoint
		v1.GET("/customers", middleware.RequireRole("manager", "admin"), customersH.List)
		v1.GET("/customers/:id", middleware.RequireRole("manager", "admin"), customersH.Get)
		customers := v1.Group("/customers", middleware.RequireRole("admin"))
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		v1.GET("/trade-points", middleware.RequireRole("manager", "admin"), tradePointsH.List)
		v1.GET("/trade-points/:id", middleware.RequireRole("manager", "admin"), tradePointsH.Get)
		tradePoints := v1.Group("/trade-points", middleware.RequireRole("admin"))
		{
			tradePoints.POST("", tradePointsH.Create)
			tradePoints.PUT("/:id", tradePointsH.Update)
			tradePoints.DELETE("/:id", tradePointsH.Delete)
		}

		v1.GET("/products", middleware.RequireRole("manager", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("manager", "admin"), productsH.Get)
		products := v1.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		// Customer product aliases — created by parsing, only the base-product
		// link is writable
		v1.GET("/customer-products", middleware.RequireRole("manager", "admin"), customerProductsH.List)
		v1.GET("/customer-products/:id", middleware.RequireRole("manager", "admin"), customerProductsH.Get)
		v1.PATCH("/customer-products/:id", middleware.RequireRole("manager", "admin"), customerProductsH.Update)
		v1.DELETE("/customer-products/:id", middleware.RequireRole("admin"), customerProductsH.Delete)

		// Uploads and resulting orders
		v1.POST("/customer-orders", middleware.RequireRole("manager", "admin"), ordersH.Upload)
		v1.GET("/customer-orders", middleware.RequireRole("manager", "admin"), ordersH.ListCustomerOrders)
		v1.GET("/customer-orders/:id", middleware.RequireRole("manager", "admin"), ordersH.GetCustomerOrder)
		v1.GET("/orders", middleware.RequireRole("manager", "admin"), ordersH.ListOrders)
		v1.GET("/orders/:id", middleware.RequireRole("manager", "admin"), ordersH.GetOrder)
		v1.GET("/orders/:id/pdf", middleware.RequireRole("manager", "admin"), ordersH.ExportPDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
