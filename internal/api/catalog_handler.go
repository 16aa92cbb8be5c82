package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/rbac"
	"github.com/pirxey/timetrack-api/internal/service"
)

// CatalogHandler handles project, tag, client, team and member endpoints
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// Capabilities handles GET /v1/capabilities, returning the acting user's
// resolved capability list
func (h *CatalogHandler) Capabilities(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"role":         user.Role,
		"capabilities": rbac.CapabilitiesForRole(user.Role),
	})
}

// ListProjects handles GET /v1/projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	projects, err := h.services.Catalog.VisibleProjects(c.Request.Context(), currentUser(c), workspaceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject handles POST /v1/projects
func (h *CatalogHandler) CreateProject(c *gin.Context) {
	var payload models.CreateProject
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := h.services.Catalog.CreateProject(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /v1/projects/:id
func (h *CatalogHandler) UpdateProject(c *gin.Context) {
	var payload models.CreateProject
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := h.services.Catalog.UpdateProject(c.Request.Context(), currentUser(c), c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /v1/projects/:id
func (h *CatalogHandler) DeleteProject(c *gin.Context) {
	if err := h.services.Catalog.DeleteProject(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTags handles GET /v1/tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	tags, err := h.services.Catalog.ListTags(c.Request.Context(), workspaceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if tags == nil {
		tags = []*models.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag handles POST /v1/tags
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var payload models.CreateTag
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tag, err := h.services.Catalog.CreateTag(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// DeleteTag handles DELETE /v1/tags/:id
func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	if err := h.services.Catalog.DeleteTag(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories handles GET /v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	categories, err := h.services.Catalog.ListCategories(c.Request.Context(), currentUser(c), workspaceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /v1/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var payload models.CreateCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := h.services.Catalog.CreateCategory(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /v1/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var payload models.CreateCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := h.services.Catalog.UpdateCategory(c.Request.Context(), currentUser(c), c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /v1/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.services.Catalog.DeleteCategory(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClients handles GET /v1/clients
func (h *CatalogHandler) ListClients(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	clients, err := h.services.Catalog.ListClients(c.Request.Context(), currentUser(c), workspaceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// CreateClient handles POST /v1/clients
func (h *CatalogHandler) CreateClient(c *gin.Context) {
	var payload models.CreateClient
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	client, err := h.services.Catalog.CreateClient(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// DeleteClient handles DELETE /v1/clients/:id
func (h *CatalogHandler) DeleteClient(c *gin.Context) {
	if err := h.services.Catalog.DeleteClient(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTeams handles GET /v1/teams
func (h *CatalogHandler) ListTeams(c *gin.Context) {
	workspaceID, ok := requireWorkspace(c)
	if !ok {
		return
	}
	teams, err := h.services.Catalog.ListTeams(c.Request.Context(), workspaceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if teams == nil {
		teams = []*models.Team{}
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// ListMembers handles GET /v1/members
func (h *CatalogHandler) ListMembers(c *gin.Context) {
	members, err := h.services.Catalog.ListMembers(c.Request.Context(), currentUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if members == nil {
		members = []*models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// InviteMember handles POST /v1/members
func (h *CatalogHandler) InviteMember(c *gin.Context) {
	var payload models.CreateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	member, err := h.services.Catalog.InviteMember(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateMember handles PUT /v1/members/:id
func (h *CatalogHandler) UpdateMember(c *gin.Context) {
	var payload models.UpdateUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	member, err := h.services.Catalog.UpdateMember(c.Request.Context(), currentUser(c), c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// RemoveMember handles DELETE /v1/members/:id
func (h *CatalogHandler) RemoveMember(c *gin.Context) {
	if err := h.services.Catalog.RemoveMember(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings handles GET /v1/settings
func (h *CatalogHandler) GetSettings(c *gin.Context) {
	settings, err := h.services.Catalog.GetSettings(c.Request.Context(), currentUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /v1/settings
func (h *CatalogHandler) UpdateSettings(c *gin.Context) {
	var payload models.UserSettings
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	settings, err := h.services.Catalog.UpdateSettings(c.Request.Context(), currentUser(c), &payload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func requireWorkspace(c *gin.Context) (string, bool) {
	workspaceID := c.Query("workspace_id")
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id is required"})
		return "", false
	}
	return workspaceID, true
}
