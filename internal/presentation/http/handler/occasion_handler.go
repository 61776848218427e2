package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/request"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/response"
)

// OccasionHandler handles occasion HTTP requests
type OccasionHandler struct {
	occasionService *service.OccasionService
}

// NewOccasionHandler creates a new occasion handler
func NewOccasionHandler(occasionService *service.OccasionService) *OccasionHandler {
	return &OccasionHandler{occasionService: occasionService}
}

// Create handles creating an occasion
func (h *OccasionHandler) Create(c *gin.Context) {
	var req request.OccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	occasion, err := h.occasionService.CreateOccasion(c.Request.Context(), &service.OccasionInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Occasion created", occasion)
}

// Update handles renaming an occasion
func (h *OccasionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid occasion ID")
		return
	}

	var req request.OccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	occasion, err := h.occasionService.UpdateOccasion(c.Request.Context(), id, &service.OccasionInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Occasion updated", occasion)
}

// List handles listing all occasions
func (h *OccasionHandler) List(c *gin.Context) {
	occasions, err := h.occasionService.ListOccasions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Occasions retrieved successfully", occasions)
}

// Delete handles deleting an occasion
func (h *OccasionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid occasion ID")
		return
	}

	if err := h.occasionService.DeleteOccasion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Occasion deleted", nil)
}
