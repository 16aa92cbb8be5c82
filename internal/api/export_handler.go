package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/report"
	"github.com/pirxey/timetrack-api/internal/service"
)

// ExportHandler handles report and file export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// Report handles GET /v1/reports
func (h *ExportHandler) Report(c *gin.Context) {
	workspaceID, f, dim, ok := h.readQuery(c)
	if !ok {
		return
	}

	r, err := h.services.Report.Build(c.Request.Context(), currentUser(c), workspaceID, f, dim)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Export handles GET /v1/exports?format=csv|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	workspaceID, f, dim, ok := h.readQuery(c)
	if !ok {
		return
	}

	user := currentUser(c)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		text, err := h.services.Report.ExportCSV(c.Request.Context(), user, workspaceID, f)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="time-entries.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte("\uFEFF"+text))
	case "xlsx":
		data, err := h.services.Report.ExportExcel(c.Request.Context(), user, workspaceID, f, dim)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="time-entries.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

// readQuery extracts the workspace, filter and grouping dimension from the
// query string
func (h *ExportHandler) readQuery(c *gin.Context) (string, *report.Filter, report.Dimension, bool) {
	workspaceID := c.Query("workspace_id")
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return "", nil, "", false
	}

	dim := report.Dimension(c.DefaultQuery("group_by", string(report.DimensionNone)))
	if !report.ValidDimensions[dim] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be one of: none, member, project, client, team"})
		return "", nil, "", false
	}

	f := &report.Filter{
		From:      c.Query("from"),
		To:        c.Query("to"),
		UserID:    c.Query("user_id"),
		ProjectID: c.Query("project_id"),
		ClientID:  c.Query("client_id"),
		TagID:     c.Query("tag_id"),
	}
	if raw := c.Query("billable"); raw != "" {
		billable, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "billable must be true or false"})
			return "", nil, "", false
		}
		f.Billable = &billable
	}
	return workspaceID, f, dim, true
}
