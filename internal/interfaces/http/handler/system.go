package handler

import (
	"time"

	"github.com/fincontrol/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and maintenance endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	reset   *persistence.ResetService
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, reset *persistence.ResetService) *SystemHandler {
	return &SystemHandler{db: db, reset: reset, started: time.Now()}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(r *gin.RouterGroup) {
	system := r.Group("/system")
	{
		system.GET("/ping", h.Ping)
		system.GET("/health", h.Health)
		system.POST("/reset", h.Reset)
	}
}

// Ping handles GET /system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}

// Health handles GET /system/health, checking database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	if err := h.db.Ping(); err != nil {
		status = "degraded"
	}
	h.Success(c, gin.H{
		"status": status,
		"uptime": time.Since(h.started).String(),
	})
}

// ResetRequest guards the destructive reset behind an explicit confirmation
type ResetRequest struct {
	Confirm string `json:"confirm" binding:"required,eq=RESET_ALL"`
}

// Reset handles POST /system/reset. It wipes every collection and cannot be
// undone, so the caller must send the exact confirmation phrase.
func (h *SystemHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Reset requires confirm set to RESET_ALL")
		return
	}

	if err := h.reset.ResetAll(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
