package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/response"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/middleware"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
)

// ChangelogHandler handles changelog HTTP requests
type ChangelogHandler struct {
	changelogService *service.ChangelogService
}

// NewChangelogHandler creates a new changelog handler
func NewChangelogHandler(changelogService *service.ChangelogService) *ChangelogHandler {
	return &ChangelogHandler{changelogService: changelogService}
}

// List handles listing changelog entries for a branch
func (h *ChangelogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.changelogService.ListEntries(c.Request.Context(), middleware.GetBranchCode(c), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Changelog retrieved successfully", result)
}
