package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/config"
	"github.com/pirxey/timetrack-api/internal/service"
)

// ImportHandler handles CSV import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// Import handles POST /v1/imports. The whole batch commits atomically; a
// single bad row rejects the file and the response carries every error.
func (h *ImportHandler) Import(c *gin.Context) {
	workspaceID, csvText, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.services.Import.Import(c.Request.Context(), currentUser(c), workspaceID, csvText)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

// Validate handles POST /v1/imports/validate. Same pipeline as Import but
// nothing is persisted, backing the preview screen.
func (h *ImportHandler) Validate(c *gin.Context) {
	workspaceID, csvText, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.services.Import.Validate(c.Request.Context(), currentUser(c), workspaceID, csvText)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Template handles GET /v1/imports/template. The payload carries a UTF-8
// BOM so spreadsheet applications detect the encoding.
func (h *ImportHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="time-entries-template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte("\uFEFF"+h.services.Import.Template()))
}

// readUpload extracts the workspace id and file content from a multipart
// upload
func (h *ImportHandler) readUpload(c *gin.Context) (workspaceID, csvText string, ok bool) {
	workspaceID = c.PostForm("workspace_id")
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return "", "", false
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return "", "", false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.cfg.Import.MaxUploadSize+1))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", "", false
	}
	if int64(len(content)) > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return "", "", false
	}
	return workspaceID, string(content), true
}
