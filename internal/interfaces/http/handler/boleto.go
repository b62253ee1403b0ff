package handler

import (
	appboleto "github.com/fincontrol/backend/internal/application/boleto"
	"github.com/gin-gonic/gin"
)

// BoletoHandler handles payable endpoints
type BoletoHandler struct {
	BaseHandler
	service *appboleto.Service
}

// NewBoletoHandler creates a new BoletoHandler
func NewBoletoHandler(service *appboleto.Service) *BoletoHandler {
	return &BoletoHandler{service: service}
}

// RegisterRoutes registers boleto routes
func (h *BoletoHandler) RegisterRoutes(r *gin.RouterGroup) {
	boletos := r.Group("/boletos")
	{
		boletos.POST("", h.Create)
		boletos.GET("", h.List)
		boletos.POST("/import", h.Import)
		boletos.GET("/:id", h.Get)
		boletos.PUT("/:id", h.Update)
		boletos.DELETE("/:id", h.Delete)
		boletos.POST("/:id/settle", h.Settle)
		boletos.POST("/:id/reverse", h.ReverseSettlement)
	}
}

// Create handles POST /boletos
func (h *BoletoHandler) Create(c *gin.Context) {
	var req appboleto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// List handles GET /boletos. ?status=pending or ?status=paid filters.
func (h *BoletoHandler) List(c *gin.Context) {
	var (
		boletos any
		err     error
	)
	switch c.Query("status") {
	case "pending":
		boletos, err = h.service.ListPending(c.Request.Context())
	case "paid":
		boletos, err = h.service.ListPaid(c.Request.Context())
	default:
		boletos, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, boletos)
}

// Get handles GET /boletos/:id
func (h *BoletoHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid boleto ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Update handles PUT /boletos/:id
func (h *BoletoHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid boleto ID")
		return
	}

	var req appboleto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Delete handles DELETE /boletos/:id
func (h *BoletoHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid boleto ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Settle handles POST /boletos/:id/settle
func (h *BoletoHandler) Settle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid boleto ID")
		return
	}

	var req appboleto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Settle(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// ReverseSettlement handles POST /boletos/:id/reverse
func (h *BoletoHandler) ReverseSettlement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid boleto ID")
		return
	}

	b, err := h.service.ReverseSettlement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Import handles POST /boletos/import
func (h *BoletoHandler) Import(c *gin.Context) {
	var req appboleto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
