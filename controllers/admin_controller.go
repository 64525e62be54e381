package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
	"github.com/NgocDuong9/be-betaw/services"
)

// ToggleActiveRequest flips an account's active flag.
type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetRoleRequest changes an account's role.
type SetRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Orders   *repository.OrderStats `json:"orders"`
	Products *services.ProductStats `json:"products"`
	Users    int64                  `json:"users"`
}

// AdminController serves the admin dashboard and user management
// endpoints. Order and product administration live on their own
// controllers.
type AdminController struct {
	orders   *services.OrderService
	products *services.ProductService
	users    *services.UserService
}

// NewAdminController creates an AdminController.
func NewAdminController(orders *services.OrderService, products *services.ProductService, users *services.UserService) *AdminController {
	return &AdminController{orders: orders, products: products, users: users}
}

// Dashboard handles GET /admin/dashboard.
func (ctl *AdminController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	orderStats, err := ctl.orders.Stats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	productStats, err := ctl.products.Stats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	userCount, err := ctl.users.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, DashboardStats{
		Orders:   orderStats,
		Products: productStats,
		Users:    userCount,
	})
}

// ListUsers handles GET /admin/users.
func (ctl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctl.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// GetUser handles GET /admin/users/:id.
func (ctl *AdminController) GetUser(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := ctl.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// ToggleUserActive handles PUT /admin/users/:id/active.
func (ctl *AdminController) ToggleUserActive(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := ctl.users.ToggleActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, user, "User updated")
}

// SetUserRole handles PUT /admin/users/:id/role.
func (ctl *AdminController) SetUserRole(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := ctl.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, user, "User role updated")
}

// DeleteUser handles DELETE /admin/users/:id.
func (ctl *AdminController) DeleteUser(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := ctl.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, nil, "User deleted")
}

// UserOrders handles GET /admin/users/:id/orders.
func (ctl *AdminController) UserOrders(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	orders, err := ctl.orders.ListByUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}
