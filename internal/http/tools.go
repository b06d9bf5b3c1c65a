package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/toolm8/toolm8/internal/database/tools"
	"github.com/toolm8/toolm8/internal/entities"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ToolsController serves the public catalog endpoints.
type ToolsController struct {
	store      ToolLister
	clicks     ClickRecorder
	categories CategoryLister
}

func NewToolsController(store ToolLister, clicks ClickRecorder, categories CategoryLister) *ToolsController {
	return &ToolsController{
		store:      store,
		clicks:     clicks,
		categories: categories,
	}
}

// List handles GET /api/tools with optional pricing, source, search and
// pagination query parameters.
func (tc *ToolsController) List(c *gin.Context) {
	limit := intQuery(c, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := tools.ListFilter{
		PricingType: entities.PricingType(c.Query("pricing")),
		Source:      c.Query("source"),
		Search:      c.Query("q"),
		Limit:       limit,
		Offset:      intQuery(c, "offset", 0),
	}

	listed, total, err := tc.store.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tools":  listed,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Get handles GET /api/tools/:slug.
func (tc *ToolsController) Get(c *gin.Context) {
	tool, err := tc.store.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tool)
}

// Click handles POST /api/tools/:slug/click, recording the outbound click
// and returning the website URL to redirect to.
func (tc *ToolsController) Click(c *gin.Context) {
	tool, err := tc.store.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := tc.clicks.RecordClick(tool.ID, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"website_url": tool.WebsiteURL})
}

// Categories handles GET /api/categories.
func (tc *ToolsController) Categories(c *gin.Context) {
	var (
		categories []entities.Category
		err        error
	)
	if c.Query("featured") == "true" {
		categories, err = tc.categories.GetFeatured()
	} else {
		categories, err = tc.categories.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
