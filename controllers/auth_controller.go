package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/middleware"
	"github.com/NgocDuong9/be-betaw/services"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController serves registration, login and profile endpoints.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register.
func (ctl *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	result, err := ctl.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, "Account created successfully")
}

// Login handles POST /auth/login.
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	result, err := ctl.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Profile handles GET /auth/profile.
func (ctl *AuthController) Profile(c *gin.Context) {
	user, err := ctl.auth.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
