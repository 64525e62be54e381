package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/middleware"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/services"
)

// OrderController serves the customer-facing order endpoints.
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an OrderController.
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /orders.
func (ctl *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	order, err := ctl.orders.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order, "Order placed successfully")
}

// List handles GET /orders.
func (ctl *OrderController) List(c *gin.Context) {
	orders, err := ctl.orders.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// Stats handles GET /orders/stats.
func (ctl *OrderController) Stats(c *gin.Context) {
	stats, err := ctl.orders.StatsForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Get handles GET /orders/:id.
func (ctl *OrderController) Get(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := ctl.orders.GetForUser(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// Cancel handles PUT /orders/:id/cancel.
func (ctl *OrderController) Cancel(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := ctl.orders.Cancel(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, order, "Order cancelled")
}

// ListAll handles GET /admin/orders.
func (ctl *OrderController) ListAll(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	page, err := ctl.orders.ListAll(c.Request.Context(), status,
		queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// GetAdmin handles GET /admin/orders/:id.
func (ctl *OrderController) GetAdmin(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := ctl.orders.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// UpdateAdmin handles PUT /admin/orders/:id.
func (ctl *OrderController) UpdateAdmin(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	order, err := ctl.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, order, "Order updated")
}
