package handler

import (
	"time"

	appexpense "github.com/fincontrol/backend/internal/application/expense"
	"github.com/fincontrol/backend/internal/domain/expense"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	BaseHandler
	service *appexpense.Service
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *appexpense.Service) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(r *gin.RouterGroup) {
	expenses := r.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/categories", h.ListCategories)
		expenses.GET("/dashboard", h.Dashboard)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req appexpense.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, e)
}

// List handles GET /expenses. Optional query filters: category, status, type
// and year/month on the due date.
func (h *ExpenseHandler) List(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, filterExpenses(c, all))
}

func filterExpenses(c *gin.Context, all []expense.Expense) []expense.Expense {
	category := c.Query("category")
	status := c.Query("status")
	kind := c.Query("type")
	year, month, ok := parsePeriod(c, 0, 0)
	if !ok {
		year, month = 0, 0
	}

	out := make([]expense.Expense, 0, len(all))
	for _, e := range all {
		if category != "" && string(e.Category) != category {
			continue
		}
		if status != "" && string(e.Status) != status {
			continue
		}
		if kind != "" && string(e.Type) != kind {
			continue
		}
		if year != 0 && e.DueDate.Year() != year {
			continue
		}
		if month != 0 && int(e.DueDate.Month()) != month {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req appexpense.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCategories handles GET /expenses/categories
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	h.Success(c, expense.AllCategories())
}

// Dashboard handles GET /expenses/dashboard?year=2026&month=6, defaulting to
// the current month.
func (h *ExpenseHandler) Dashboard(c *gin.Context) {
	now := time.Now()
	year, month, ok := parsePeriod(c, now.Year(), int(now.Month()))
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	dashboard, err := h.service.BuildDashboard(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
