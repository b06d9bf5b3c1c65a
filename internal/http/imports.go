package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toolm8/toolm8/internal/services"
)

// maxUploadBytes bounds import uploads; directory exports run well under this.
const maxUploadBytes = 20 << 20 // 20 MiB

// ImportController handles file-based tool ingestion.
type ImportController struct {
	importer *services.Importer
}

func NewImportController(importer *services.Importer) *ImportController {
	return &ImportController{importer: importer}
}

// Sources handles GET /api/import/sources and lists the accepted source
// identifiers.
func (ic *ImportController) Sources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources": ic.importer.SupportedSources(),
	})
}

// Import handles POST /api/import. The request is multipart form data with a
// "file" part, a "source" field and an optional "replace_existing" flag that
// switches the write path from insert-new-only to upsert.
func (ic *ImportController) Import(c *gin.Context) {
	source := c.PostForm("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source field is required"})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file: " + err.Error()})
		return
	}

	opts := services.ImportOptions{
		Upsert: c.PostForm("replace_existing") == "true",
	}

	result := ic.importer.Import(source, raw, opts)

	statusCode := http.StatusOK
	if !result.Success {
		statusCode = http.StatusBadRequest
	}
	c.JSON(statusCode, result)
}

// ProcessFile handles POST /api/process-file. Like Import, but for
// loosely-structured scraped exports where the column names are not known in
// advance; the upload always goes through the hexofy parser.
func (ic *ImportController) ProcessFile(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file: " + err.Error()})
		return
	}

	opts := services.ImportOptions{
		Upsert: c.PostForm("replace_existing") == "true",
	}

	result := ic.importer.Import("hexofy", raw, opts)

	statusCode := http.StatusOK
	if !result.Success {
		statusCode = http.StatusBadRequest
	}
	c.JSON(statusCode, result)
}
