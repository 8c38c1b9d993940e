package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/config"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/handler"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/middleware"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/service"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service/Engine ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB, remote infra.RemoteAuthority, cb *infra.CircuitBreaker, engine *worker.SyncEngine) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(catalogRepo, syncLogRepo, remote)
	saleSvc := service.NewSaleService(saleRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(catalogSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	syncH := handler.NewSyncHandler(engine, catalogSvc, syncLogRepo)
	settingsH := handler.NewSettingsHandler(settingsRepo)
	healthH := handler.NewHealthHandler(db, cb, saleRepo)

	// ── Routes ───────────────────────────────────────────────────────────────
	// Loopback API for the host shell: no auth layer, single-operator terminal.

	r.GET("/health", healthH.Check)

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.GET("/count", productsH.Count)
			products.GET("/search", productsH.Search)
			products.GET("/code/:code", productsH.GetByCode)
			products.PATCH("/:id/stock", productsH.UpdateStock)
		}

		v1.GET("/clients", catalogH.ListClients)
		v1.GET("/categories", catalogH.ListCategories)
		v1.GET("/warehouses", catalogH.ListWarehouses)
		v1.GET("/payment-methods", catalogH.ListPaymentMethods)

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Enqueue)
			sales.GET("", salesH.List)
			sales.GET("/pending", salesH.ListPending)
			sales.GET("/pending/count", salesH.PendingCount)
			sales.POST("/:id/requeue", salesH.Requeue)
		}

		sync := v1.Group("/sync")
		{
			sync.POST("/run", syncH.RunPass)
			sync.POST("/catalog", syncH.RefreshCatalog)
			sync.GET("/log", syncH.ListLog)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/:key", settingsH.Get)
			settings.PUT("/:key", settingsH.Put)
		}
	}

	return r
}
