package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Create POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	account, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, account)
}

// Get GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, account)
}

// List GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	skip, limit := GetSkipLimit(c)
	list, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, list)
}

// Update PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	account, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, account)
}

// Delete DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
