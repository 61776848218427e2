package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/request"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/dto/response"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/middleware"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles finalizing an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(
		c.Request.Context(),
		middleware.GetBranchCode(c),
		req.ToInput(GetUserID(c), GetUsername(c)),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order saved", order)
}

// AutosaveDraft handles the periodic draft save from the order form
func (h *OrderHandler) AutosaveDraft(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AutosaveDraft(
		c.Request.Context(),
		middleware.GetBranchCode(c),
		req.ToInput(GetUserID(c), GetUsername(c)),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft saved", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		IsDraft:    req.IsDraft,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	params.Pagination.Validate()

	if req.Status != "" {
		status := enum.OrderStatus(req.Status)
		if !status.IsValid() {
			response.BadRequest(c, "Unknown order status")
			return
		}
		params.Status = &status
	}
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.BadRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), middleware.GetBranchCode(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles retrieving a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), middleware.GetBranchCode(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles updating a finalized order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrder(
		c.Request.Context(),
		middleware.GetBranchCode(c),
		id,
		req.ToInput(GetUserID(c), GetUsername(c)),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated", order)
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), middleware.GetBranchCode(c), id, GetUsername(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted", nil)
}

// RecordPayment handles advance/balance payment updates
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), middleware.GetBranchCode(c), id, &service.PaymentInput{
		AdvancePaid: req.AdvancePaid,
		BalancePaid: req.BalancePaid,
		Username:    GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", order)
}

// LastNumber handles allocating the next order number for a prefix
func (h *OrderHandler) LastNumber(c *gin.Context) {
	number, err := h.orderService.NextOrderNumber(
		c.Request.Context(),
		middleware.GetBranchCode(c),
		c.Param("prefix"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next order number", gin.H{"order_number": number})
}

// CheckNumber handles checking whether an order number is free
func (h *OrderHandler) CheckNumber(c *gin.Context) {
	available, err := h.orderService.IsNumberAvailable(
		c.Request.Context(),
		middleware.GetBranchCode(c),
		c.Query("order_number"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order number checked", gin.H{"available": available})
}
