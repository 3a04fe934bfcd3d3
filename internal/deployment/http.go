package deployment

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emergent-labs/coder-backend/internal/deployment/repository"
	"github.com/emergent-labs/coder-backend/internal/projects"
	"github.com/emergent-labs/coder-backend/internal/projects/domain"
)

type Handler struct {
	svc   *Service
	store *projects.Store
	repo  *repository.Repo
}

// Register wires the deploy routes. repo may be nil when no database is
// configured; deployment history is then reported as unavailable.
func Register(rg *gin.RouterGroup, svc *Service, store *projects.Store, repo *repository.Repo) {
	h := &Handler{svc: svc, store: store, repo: repo}

	rg.POST("/deploy", h.deploy)
	rg.GET("/deployments/:user_id", h.list)
}

type deployReq struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Platform  string `json:"platform"`
}

func (h *Handler) deploy(c *gin.Context) {
	var req deployReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if req.Platform == "" {
		req.Platform = "vercel"
	}

	detail, err := h.store.Get(req.UserID, req.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	name := detail.Metadata.Name
	if name == "" {
		name = "project-" + req.ProjectID
	}

	ctx := c.Request.Context()
	var result Result
	switch req.Platform {
	case "vercel":
		result = h.svc.DeployVercel(ctx, detail.Path, name)
	case "netlify":
		result = h.svc.DeployNetlify(ctx, detail.Path, name)
	case "preview":
		result = h.svc.Preview(ctx, detail.Path, name)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported deployment platform"})
		return
	}

	if result.Success && h.repo != nil {
		rec := repository.Record{
			ProjectID: req.ProjectID,
			UserID:    req.UserID,
			Platform:  req.Platform,
			URL:       result.URL,
		}
		if err := h.repo.Insert(ctx, &rec); err != nil {
			log.Printf("[warn] operation=deploy record write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) list(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"deployments": []repository.Record{},
			"note":        "deployment history requires a configured database",
		})
		return
	}

	items, err := h.repo.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deployments": items})
}
