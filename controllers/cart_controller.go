package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/middleware"
	"github.com/NgocDuong9/be-betaw/services"
)

// AddCartItemRequest is the payload for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// UpdateCartItemRequest sets the quantity of an existing cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// SyncCartRequest carries a client-side guest cart to merge on login.
type SyncCartRequest struct {
	Items []services.SyncCartItem `json:"items" binding:"required,dive"`
}

// CartController serves the per-user cart endpoints.
type CartController struct {
	carts *services.CartService
}

// NewCartController creates a CartController.
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// Get handles GET /cart.
func (ctl *CartController) Get(c *gin.Context) {
	cart, err := ctl.carts.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// AddItem handles POST /cart/items.
func (ctl *CartController) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		response.Error(c, apperrors.BadRequest("Invalid product ID"))
		return
	}

	cart, err := ctl.carts.Add(c.Request.Context(), middleware.GetUserID(c), productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, cart, "Item added to cart")
}

// UpdateItem handles PUT /cart/items/:productId.
func (ctl *CartController) UpdateItem(c *gin.Context) {
	productID, err := parseObjectID(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	cart, err := ctl.carts.Update(c.Request.Context(), middleware.GetUserID(c), productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, cart, "Cart updated")
}

// RemoveItem handles DELETE /cart/items/:productId.
func (ctl *CartController) RemoveItem(c *gin.Context) {
	productID, err := parseObjectID(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	cart, err := ctl.carts.Remove(c.Request.Context(), middleware.GetUserID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, cart, "Item removed from cart")
}

// Clear handles DELETE /cart.
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, nil, "Cart cleared")
}

// Sync handles POST /cart/sync.
func (ctl *CartController) Sync(c *gin.Context) {
	var req SyncCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	cart, err := ctl.carts.Sync(c.Request.Context(), middleware.GetUserID(c), req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, cart, "Cart synced")
}
