package handler

import (
	"time"

	appreport "github.com/fincontrol/backend/internal/application/report"
	"github.com/fincontrol/backend/internal/infrastructure/currency"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles derived report endpoints
type ReportHandler struct {
	BaseHandler
	service *appreport.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/cash", h.CashOnHand)
		reports.GET("/revenue", h.YearTable)
		reports.GET("/supplements", h.ListSupplements)
		reports.PUT("/supplements", h.UpsertSupplement)
	}
}

// CashOnHand handles GET /reports/cash
func (h *ReportHandler) CashOnHand(c *gin.Context) {
	cash, err := h.service.CashOnHand(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"cash_on_hand": cash,
		"formatted":    currency.Format(cash.Amount()),
	})
}

// YearTable handles GET /reports/revenue?year=2026, defaulting to the
// current year.
func (h *ReportHandler) YearTable(c *gin.Context) {
	year, _, ok := parsePeriod(c, time.Now().Year(), 1)
	if !ok {
		h.BadRequest(c, "Invalid year")
		return
	}

	table, err := h.service.BuildYearTable(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"table":                   table,
		"total_revenue_formatted": currency.Format(table.TotalRevenue),
	})
}

// ListSupplements handles GET /reports/supplements?year=2026
func (h *ReportHandler) ListSupplements(c *gin.Context) {
	year, _, ok := parsePeriod(c, time.Now().Year(), 1)
	if !ok {
		h.BadRequest(c, "Invalid year")
		return
	}

	supplements, err := h.service.ListSupplements(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplements)
}

// UpsertSupplement handles PUT /reports/supplements
func (h *ReportHandler) UpsertSupplement(c *gin.Context) {
	var req appreport.UpsertSupplementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sup, err := h.service.UpsertSupplement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sup)
}
