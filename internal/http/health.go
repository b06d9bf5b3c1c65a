package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/entities"
)

// HealthResponse is the payload served at /health. Checks maps each probed
// dependency to "ok" or a failure description; ToolCount gives monitors a
// quick read on whether the catalog actually has content.
type HealthResponse struct {
	Status    string            `json:"status"`
	Time      string            `json:"time"`
	Version   string            `json:"version,omitempty"`
	ToolCount int64             `json:"tool_count"`
	Checks    map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status handles GET /health. The database probe pings the connection and
// counts catalog rows, so a wiped or wrongly-pathed database file shows up
// even while the connection itself still answers.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string),
	}

	if h.db == nil {
		health.Checks["database"] = "not configured"
	} else if err := h.probeCatalog(&health); err != nil {
		health.Checks["database"] = "error: " + err.Error()
		health.Status = "unhealthy"
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) probeCatalog(health *HealthResponse) error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return err
	}
	if err := h.db.DB.Model(&entities.Tool{}).Count(&health.ToolCount).Error; err != nil {
		return err
	}
	health.Checks["database"] = fmt.Sprintf("ok (%d tools)", health.ToolCount)
	return nil
}
