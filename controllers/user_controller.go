package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/middleware"
	"github.com/NgocDuong9/be-betaw/services"
)

// UserController serves the self-service account endpoints.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Me handles GET /users/me.
func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.users.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateMe handles PUT /users/me.
func (ctl *UserController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := ctl.users.Update(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, user, "Profile updated")
}

// DeleteMe handles DELETE /users/me.
func (ctl *UserController) DeleteMe(c *gin.Context) {
	if err := ctl.users.Deactivate(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, nil, "Account deactivated")
}
