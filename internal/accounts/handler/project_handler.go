package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, project)
}

// Get GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, project)
}

// List GET /api/v1/projects?account_id=...
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context(), c.Query("account_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"items": projects})
}

// Update PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, project)
}

// Delete DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
