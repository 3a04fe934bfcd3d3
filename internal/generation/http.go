package generation

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emergent-labs/coder-backend/internal/history"
)

type Handler struct {
	svc  *Service
	hist *history.Repo
}

func Register(rg *gin.RouterGroup, svc *Service, hist *history.Repo) {
	h := &Handler{svc: svc, hist: hist}

	rg.POST("/chat", h.chat)
	rg.POST("/analyze", h.analyze)
}

type chatReq struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Language string `json:"language"`
	Model    string `json:"model"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}
	if req.Language == "" {
		req.Language = "python"
	}
	if req.Model == "" {
		req.Model = "auto"
	}

	ctx := c.Request.Context()
	result := h.svc.GenerateCode(ctx, req.Message, req.Language, req.Model)

	// History is best-effort: a storage failure never fails the request.
	if err := h.hist.RecordChat(ctx, history.ChatRecord{
		UserID:   req.UserID,
		Message:  req.Message,
		Response: result,
		Language: req.Language,
		Model:    req.Model,
	}); err != nil {
		NewLogger(ctx).LogWarnf("chat", "history write failed: %v", err)
	}

	message := "Code generated successfully!"
	if result.ModelUsed == NewFallback().Name() {
		message = "Code generation completed with fallback"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"response":  result,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}

type analyzeReq struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	UserID   string `json:"user_id"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	result := h.svc.AnalyzeCode(c.Request.Context(), req.Code, req.Language)
	c.JSON(http.StatusOK, result)
}
