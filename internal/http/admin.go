package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/tasks"
)

// TaskEnqueuer is the slice of the task client the admin surface needs.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// AdminController serves the operator endpoints. All routes here sit behind
// the admin-key middleware.
type AdminController struct {
	store CatalogAdmin
	db    *database.Database
	queue TaskEnqueuer
}

func NewAdminController(store CatalogAdmin, db *database.Database, queue TaskEnqueuer) *AdminController {
	return &AdminController{
		store: store,
		db:    db,
		queue: queue,
	}
}

// Stats handles GET /admin/stats.
func (ac *AdminController) Stats(c *gin.Context) {
	total, err := ac.store.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	bySource, err := ac.store.CountBySource()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_tools": total,
		"by_source":   bySource,
	})
}

// ClearTools handles DELETE /admin/tools. With a "source" query parameter it
// removes that source's tools only; without one it clears the catalog.
func (ac *AdminController) ClearTools(c *gin.Context) {
	var (
		deleted int64
		err     error
	)

	source := c.Query("source")
	if source != "" {
		deleted, err = ac.store.DeleteBySource(source)
	} else {
		deleted, err = ac.store.DeleteAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"source":  source,
	})
}

// TriggerScrape handles POST /admin/scrape. The crawl runs on the task queue
// so the request returns immediately.
func (ac *AdminController) TriggerScrape(c *gin.Context) {
	if ac.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is not enabled"})
		return
	}

	var body struct {
		MaxPages int `json:"max_pages"`
	}
	// Empty body is fine; the task falls back to its default page budget.
	_ = c.ShouldBindJSON(&body)

	ids, err := ac.queue.Add(tasks.ScrapeToolsTask{MaxPages: body.MaxPages}).Save()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "scrape queued",
		"task_ids": ids,
	})
}

// SeedCategories handles POST /admin/seed-categories, re-creating any
// missing default categories.
func (ac *AdminController) SeedCategories(c *gin.Context) {
	if err := ac.db.SeedCategories(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "categories seeded"})
}
