package handler

import (
	"strconv"
	"time"

	appsale "github.com/fincontrol/backend/internal/application/sale"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	BaseHandler
	service *appsale.Service
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *appsale.Service) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(r *gin.RouterGroup) {
	sales := r.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/totals", h.TotalsByMethod)
		sales.GET("/:id", h.Get)
		sales.PUT("/:id", h.Update)
		sales.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req appsale.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sl)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sl, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sl)
}

// Update handles PUT /sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req appsale.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sl, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sl)
}

// Delete handles DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TotalsByMethod handles GET /sales/totals?year=2026&month=6, defaulting to
// the current month.
func (h *SaleHandler) TotalsByMethod(c *gin.Context) {
	now := time.Now()
	year, month, ok := parsePeriod(c, now.Year(), int(now.Month()))
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	totals, err := h.service.TotalsByMethod(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// parsePeriod reads optional year and month query parameters
func parsePeriod(c *gin.Context, defaultYear, defaultMonth int) (int, int, bool) {
	year := defaultYear
	month := defaultMonth

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, false
		}
		month = parsed
	}
	return year, month, true
}
