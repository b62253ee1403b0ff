package handler

import (
	appbanking "github.com/fincontrol/backend/internal/application/banking"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles bank account endpoints
type AccountHandler struct {
	BaseHandler
	service *appbanking.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(service *appbanking.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Get)
		accounts.PUT("/:id", h.Update)
		accounts.DELETE("/:id", h.Delete)
		accounts.POST("/:id/activate", h.Activate)
		accounts.POST("/:id/deactivate", h.Deactivate)
		accounts.GET("/:id/movements", h.ListMovements)
		accounts.GET("/:id/consistency", h.CheckConsistency)
	}
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req appbanking.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// List handles GET /accounts. With ?active=true only active accounts return.
func (h *AccountHandler) List(c *gin.Context) {
	var (
		accounts any
		err      error
	)
	if c.Query("active") == "true" {
		accounts, err = h.service.ListActiveAccounts(c.Request.Context())
	} else {
		accounts, err = h.service.ListAccounts(c.Request.Context())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Get handles GET /accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Update handles PUT /accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req appbanking.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.service.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Delete handles DELETE /accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if err := h.service.DeleteAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate handles POST /accounts/:id/activate
func (h *AccountHandler) Activate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if err := h.service.ActivateAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /accounts/:id/deactivate
func (h *AccountHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if err := h.service.DeactivateAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMovements handles GET /accounts/:id/movements
func (h *AccountHandler) ListMovements(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	movements, err := h.service.ListMovements(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// CheckConsistency handles GET /accounts/:id/consistency
func (h *AccountHandler) CheckConsistency(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	consistent, err := h.service.CheckConsistency(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"consistent": consistent})
}
