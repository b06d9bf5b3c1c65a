package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolm8/toolm8/internal/auth"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/tasks"
)

type fakeCatalogAdmin struct {
	total    int64
	bySource map[string]int64
	cleared  []string
}

func (f *fakeCatalogAdmin) Count() (int64, error)                  { return f.total, nil }
func (f *fakeCatalogAdmin) CountBySource() (map[string]int64, error) { return f.bySource, nil }

func (f *fakeCatalogAdmin) DeleteBySource(source string) (int64, error) {
	f.cleared = append(f.cleared, source)
	return f.bySource[source], nil
}

func (f *fakeCatalogAdmin) DeleteAll() (int64, error) {
	f.cleared = append(f.cleared, "*")
	return f.total, nil
}

func setupAdminTest(t *testing.T, store *fakeCatalogAdmin, queue TaskEnqueuer) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_admin_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	guard, err := auth.NewGuard("test-admin-key", bcrypt.MinCost)
	require.NoError(t, err)

	controller := NewAdminController(store, db, queue)
	router := gin.New()
	admin := router.Group("/admin", guard.Middleware())
	admin.GET("/stats", controller.Stats)
	admin.DELETE("/tools", controller.ClearTools)
	admin.POST("/scrape", controller.TriggerScrape)
	admin.POST("/seed-categories", controller.SeedCategories)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

func adminRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(auth.AdminKeyHeader, "test-admin-key")
	return req
}

func TestAdminController_Stats(t *testing.T) {
	store := &fakeCatalogAdmin{
		total:    12,
		bySource: map[string]int64{"theresanaiforthat.com": 8, "producthunt.com": 4},
	}
	router, cleanup := setupAdminTest(t, store, nil)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/admin/stats"))

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TotalTools int64            `json:"total_tools"`
		BySource   map[string]int64 `json:"by_source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.EqualValues(t, 12, response.TotalTools)
	assert.EqualValues(t, 8, response.BySource["theresanaiforthat.com"])
}

func TestAdminController_RequiresKey(t *testing.T) {
	router, cleanup := setupAdminTest(t, &fakeCatalogAdmin{}, nil)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminController_ClearTools(t *testing.T) {
	store := &fakeCatalogAdmin{total: 5, bySource: map[string]int64{"hexofy_scraped": 2}}
	router, cleanup := setupAdminTest(t, store, nil)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("DELETE", "/admin/tools?source=hexofy_scraped"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hexofy_scraped"}, store.cleared)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("DELETE", "/admin/tools"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hexofy_scraped", "*"}, store.cleared)
}

func TestAdminController_TriggerScrapeWithoutQueue(t *testing.T) {
	router, cleanup := setupAdminTest(t, &fakeCatalogAdmin{}, nil)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/admin/scrape"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminController_TriggerScrape(t *testing.T) {
	tmpDir := t.TempDir()
	client, err := tasks.NewClient(filepath.Join(tmpDir, "test.db"), tasks.DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	router, cleanup := setupAdminTest(t, &fakeCatalogAdmin{}, client)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/admin/scrape"))

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response struct {
		TaskIDs []string `json:"task_ids"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.TaskIDs, 1)
}

func TestAdminController_SeedCategories(t *testing.T) {
	router, cleanup := setupAdminTest(t, &fakeCatalogAdmin{}, nil)
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("POST", "/admin/seed-categories"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "categories seeded")
}
