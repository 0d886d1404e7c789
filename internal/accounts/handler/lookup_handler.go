package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

// LookupHandler serves the five reference tables. One route group per
// category (departments, units, verticals, locations, statuses) is
// registered against the same handler, parameterized by category key.
type LookupHandler struct {
	svc *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

type lookupRequest struct {
	Name string `json:"name"`
}

// Create POST /api/v1/<category>
func (h *LookupHandler) Create(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid request: "+err.Error())
			return
		}

		item, err := h.svc.Create(c.Request.Context(), key, req.Name, GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		Created(c, item)
	}
}

// List GET /api/v1/<category>
func (h *LookupHandler) List(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.List(c.Request.Context(), key)
		if err != nil {
			respondError(c, err)
			return
		}
		Success(c, gin.H{"items": items})
	}
}

// Get GET /api/v1/<category>/:id
func (h *LookupHandler) Get(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.svc.Get(c.Request.Context(), key, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		Success(c, item)
	}
}

// Update PUT /api/v1/<category>/:id
func (h *LookupHandler) Update(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid request: "+err.Error())
			return
		}

		item, err := h.svc.Update(c.Request.Context(), key, c.Param("id"), req.Name, GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		Success(c, item)
	}
}

// Delete DELETE /api/v1/<category>/:id
func (h *LookupHandler) Delete(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.svc.Delete(c.Request.Context(), key, c.Param("id"), GetUserID(c)); err != nil {
			respondError(c, err)
			return
		}
		Success(c, gin.H{"deleted": true})
	}
}
