package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/parsers"
	"github.com/toolm8/toolm8/internal/services"
)

type memoryToolStore struct {
	existing map[string]bool
	inserted []entities.Tool
	upserted []entities.Tool
}

func (m *memoryToolStore) ExistingSlugs() (map[string]bool, error) {
	if m.existing == nil {
		m.existing = make(map[string]bool)
	}
	return m.existing, nil
}

func (m *memoryToolStore) CheckDuplicate(tool *entities.Tool) (bool, error) {
	return m.existing[tool.Slug], nil
}

func (m *memoryToolStore) BulkInsert(tools []entities.Tool) (int, []string, error) {
	m.inserted = append(m.inserted, tools...)
	return len(tools), nil, nil
}

func (m *memoryToolStore) BulkUpsert(tools []entities.Tool) (int, []string, error) {
	m.upserted = append(m.upserted, tools...)
	return len(tools), nil, nil
}

func newImportTestRouter(store services.ToolStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	importer := services.NewImporter(parsers.NewDefaultRegistry(), store, nil)
	controller := NewImportController(importer)

	router := gin.New()
	router.GET("/api/import/sources", controller.Sources)
	router.POST("/api/import", controller.Import)
	router.POST("/api/process-file", controller.ProcessFile)
	return router
}

func multipartImportRequest(t *testing.T, source, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("source", source))
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

const importTestCSV = `ai_link,task_label,"external_ai_link href",ai_launch_date
ChatGPT,Writing,https://openai.com/chatgpt,Free + from $20/mo
`

func TestImportController_Sources(t *testing.T) {
	router := newImportTestRouter(&memoryToolStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/import/sources", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Sources, "taaft")
	assert.Contains(t, response.Sources, "hexofy")
}

func TestImportController_Import(t *testing.T) {
	store := &memoryToolStore{}
	router := newImportTestRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImportRequest(t, "taaft", "tools.csv", importTestCSV, nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var result services.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.TotalParsed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "theresanaiforthat.com", result.Source)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "chatgpt", store.inserted[0].Slug)
}

func TestImportController_ImportReplaceExisting(t *testing.T) {
	store := &memoryToolStore{existing: map[string]bool{"chatgpt": true}}
	router := newImportTestRouter(store)

	req := multipartImportRequest(t, "taaft", "tools.csv", importTestCSV, map[string]string{
		"replace_existing": "true",
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.upserted, 1)
	assert.Empty(t, store.inserted)
}

func TestImportController_ImportMissingSource(t *testing.T) {
	router := newImportTestRouter(&memoryToolStore{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "source field is required")
}

func TestImportController_ImportMissingFile(t *testing.T) {
	router := newImportTestRouter(&memoryToolStore{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("source", "taaft"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no file provided")
}

func TestImportController_ProcessFile(t *testing.T) {
	store := &memoryToolStore{}
	router := newImportTestRouter(store)

	content := "title,description,url\n" +
		"Scribble,AI note taking assistant,https://scribble.example.com\n"

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "scraped.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/api/process-file", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result services.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "hexofy_scraped", result.Source)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "scribble", store.inserted[0].Slug)
}

func TestImportController_ImportUnsupportedSource(t *testing.T) {
	router := newImportTestRouter(&memoryToolStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImportRequest(t, "nope", "tools.csv", importTestCSV, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result services.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "unsupported source")
}
