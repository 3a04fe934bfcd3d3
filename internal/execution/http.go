package execution

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emergent-labs/coder-backend/internal/history"
)

type Handler struct {
	runner *Runner
	hist   *history.Repo
}

func Register(rg *gin.RouterGroup, runner *Runner, hist *history.Repo) {
	h := &Handler{runner: runner, hist: hist}

	rg.POST("/execute", h.execute)
}

type executeReq struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	UserID   string `json:"user_id"`
}

func (h *Handler) execute(c *gin.Context) {
	var req executeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	ctx := c.Request.Context()
	result := h.runner.Run(ctx, req.Code, req.Language)

	if err := h.hist.RecordExecution(ctx, history.ExecutionRecord{
		UserID:   req.UserID,
		Code:     req.Code,
		Language: req.Language,
		Result:   result,
	}); err != nil {
		log.Printf("[warn] operation=execute history write failed: %v", err)
	}

	c.JSON(http.StatusOK, result)
}
