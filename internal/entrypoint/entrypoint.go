package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toolm8/toolm8/internal/auth"
	"github.com/toolm8/toolm8/internal/config"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/database/categories"
	"github.com/toolm8/toolm8/internal/database/tools"
	http_controllers "github.com/toolm8/toolm8/internal/http"
	"github.com/toolm8/toolm8/internal/parsers"
	"github.com/toolm8/toolm8/internal/scheduler"
	"github.com/toolm8/toolm8/internal/scraper"
	"github.com/toolm8/toolm8/internal/services"
	"github.com/toolm8/toolm8/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 1 second.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscanll.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can"t be catch, so don't need add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting toolm8 v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	toolsRepo := tools.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)

	importer := services.NewImporter(parsers.NewDefaultRegistry(), toolsRepo, categoriesRepo)

	// Scraper shared by the task queue and the cron scheduler
	siteScraper := scraper.New(
		scraper.NewFetcher(cfg.Scraper.RequestDelay),
		toolsRepo,
		cfg.Scraper.BaseURL,
	)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewScrapeToolsQueue(siteScraper),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the scheduled scrape if configured
	var scrapeScheduler *scheduler.ScrapeScheduler
	if cfg.ScrapeSchedule.Enabled {
		scrapeScheduler = scheduler.NewScrapeScheduler(siteScraper, cfg.ScrapeSchedule.Schedule, cfg.Scraper.MaxPages)
		if err := scrapeScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start scrape scheduler: %v", err)
		}
	}

	// Admin endpoints are key-protected; an empty key disables them
	guard, err := auth.NewGuard(cfg.Admin.Key, cfg.Admin.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to initialize admin guard: %v", err)
	}
	if !guard.Enabled() {
		log.Printf("WARNING: Admin key is not set. Admin endpoints will be disabled. Set 'ADMIN_KEY' environment variable to enable.")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		DB:         db,
		Importer:   importer,
		Tools:      toolsRepo,
		Clicks:     toolsRepo,
		Categories: categoriesRepo,
		Admin:      toolsRepo,
		AdminGuard: guard,
		Version:    version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if scrapeScheduler != nil {
			scrapeScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
