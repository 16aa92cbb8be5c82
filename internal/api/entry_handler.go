package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/repository"
	"github.com/pirxey/timetrack-api/internal/service"
)

// EntryHandler handles time entry endpoints
type EntryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(services *service.Services, log zerolog.Logger) *EntryHandler {
	return &EntryHandler{
		services: services,
		log:      log.With().Str("handler", "entries").Logger(),
	}
}

// List handles GET /v1/time-entries
func (h *EntryHandler) List(c *gin.Context) {
	f := repository.EntryFilter{
		From:      c.Query("from"),
		To:        c.Query("to"),
		UserID:    c.Query("user_id"),
		ProjectID: c.Query("project_id"),
	}

	entries, err := h.services.Entry.ListVisible(c.Request.Context(), currentUser(c), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []*models.TimeEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// Create handles POST /v1/time-entries
func (h *EntryHandler) Create(c *gin.Context) {
	var payload models.CreateTimeEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.services.Entry.Create(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Update handles PUT /v1/time-entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	var payload models.CreateTimeEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.services.Entry.Update(c.Request.Context(), currentUser(c), c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /v1/time-entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.services.Entry.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
