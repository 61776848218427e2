package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/request"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/response"
)

// BranchHandler handles branch-related HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create handles creating a branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req request.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &service.BranchInput{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created", branch)
}

// Update handles updating a branch
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req request.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), id, &service.BranchInput{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated", branch)
}

// Get handles retrieving a single branch
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", branch)
}

// List handles listing all branches
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", branches)
}

// Delete handles deleting a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch deleted", nil)
}
