package http

import (
	"github.com/gin-gonic/gin"

	"github.com/toolm8/toolm8/internal/auth"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/services"
)

// RouterConfig carries every dependency the router needs. A single struct
// keeps the constructor signature stable as endpoints are added.
type RouterConfig struct {
	DB         *database.Database
	Importer   *services.Importer
	Tools      ToolLister
	Clicks     ClickRecorder
	Categories CategoryLister
	Admin      CatalogAdmin
	AdminGuard *auth.Guard
	TaskQueue  TaskEnqueuer
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	{
		toolsController := NewToolsController(cfg.Tools, cfg.Clicks, cfg.Categories)
		api.GET("/tools", toolsController.List)
		api.GET("/tools/:slug", toolsController.Get)
		api.POST("/tools/:slug/click", toolsController.Click)
		api.GET("/categories", toolsController.Categories)

		importController := NewImportController(cfg.Importer)
		api.GET("/import/sources", importController.Sources)
		api.POST("/import", importController.Import)
		api.POST("/process-file", importController.ProcessFile)
	}

	admin := router.Group("/admin", cfg.AdminGuard.Middleware())
	{
		adminController := NewAdminController(cfg.Admin, cfg.DB, cfg.TaskQueue)
		admin.GET("/stats", adminController.Stats)
		admin.DELETE("/tools", adminController.ClearTools)
		admin.POST("/scrape", adminController.TriggerScrape)
		admin.POST("/seed-categories", adminController.SeedCategories)
	}

	return router
}
