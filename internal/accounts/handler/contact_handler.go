package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Create POST /api/v1/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	contact, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, contact)
}

// Get GET /api/v1/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, contact)
}

// List GET /api/v1/contacts?account_id=...
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.svc.List(c.Request.Context(), c.Query("account_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"items": contacts})
}

// Update PUT /api/v1/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	contact, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, contact)
}

// Delete DELETE /api/v1/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
