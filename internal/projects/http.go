package projects

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emergent-labs/coder-backend/internal/generation"
	"github.com/emergent-labs/coder-backend/internal/projects/domain"
)

type Handler struct {
	store *Store
	gen   *generation.Service
}

func Register(rg *gin.RouterGroup, store *Store, gen *generation.Service) {
	h := &Handler{store: store, gen: gen}

	rg.POST("", h.create)
	rg.GET("/:user_id", h.list)
	rg.GET("/:user_id/:project_id", h.get)
	rg.GET("/:user_id/:project_id/export", h.export)
	rg.PUT("/files", h.updateFile)
	rg.DELETE("/:user_id/:project_id", h.delete)
}

type createReq struct {
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
	UserID      string `json:"user_id"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if req.TechStack == "" {
		req.TechStack = "Python"
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	// Generate the project structure first, then persist it.
	plan := h.gen.GenerateProject(c.Request.Context(), req.Description, req.TechStack)

	result, err := h.store.Create(req.UserID, Spec{
		Name:              plan.Project.Name,
		Description:       req.Description,
		TechStack:         req.TechStack,
		SetupInstructions: plan.Project.SetupInstructions,
		Files:             plan.Project.Files,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrOwnerRequired) || errors.Is(err, domain.ErrInvalidPath) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"project_id":    result.ProjectID,
		"project_name":  result.ProjectName,
		"path":          result.Path,
		"files_created": result.FilesCreated,
		"metadata":      result.Metadata,
	})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	detail, err := h.store.Get(c.Param("user_id"), c.Param("project_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"metadata": detail.Metadata,
		"files":    detail.Files,
		"path":     detail.Path,
	})
}

type updateFileReq struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
}

func (h *Handler) updateFile(c *gin.Context) {
	var req updateFileReq
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" || req.UserID == "" || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}

	if err := h.store.UpdateFile(req.UserID, req.ProjectID, req.FilePath, req.Content); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File " + req.FilePath + " updated successfully",
	})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("user_id"), c.Param("project_id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted successfully"})
}

func (h *Handler) export(c *gin.Context) {
	projectID := c.Param("project_id")
	zipPath, err := h.store.Export(c.Param("user_id"), projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.FileAttachment(zipPath, "project-"+projectID+".zip")
}

// fail maps store errors onto the tagged HTTP envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
	case errors.Is(err, domain.ErrInvalidPath), errors.Is(err, domain.ErrOwnerRequired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
