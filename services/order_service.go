package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

const (
	taxRate               = 0.10
	freeShippingThreshold = 5000.0
	flatShippingFee       = 50.0
)

// CreateOrderItem is one requested order line.
type CreateOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items           []CreateOrderItem      `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	Notes           string                 `json:"notes"`
}

// UpdateOrderRequest is the admin payload for advancing an order.
type UpdateOrderRequest struct {
	Status        *models.OrderStatus   `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

// PaginatedOrders is a page of orders for the admin listing.
type PaginatedOrders struct {
	Data       []models.Order `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int64          `json:"totalPages"`
}

// OrderService implements the order workflow: checkout with stock
// reservation, order history, cancellation and admin management.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, carts repository.CartRepository) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts}
}

// Create places an order. Every line is validated against the live
// catalog, prices and names are snapshotted, and stock is decremented
// with a conditional update per line. If any line cannot be reserved,
// the decrements already applied are rolled back and no order is
// stored.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.BadRequest("Order must contain at least one item")
	}

	// Collapse duplicate lines so a product is reserved exactly once.
	quantities := map[primitive.ObjectID]int{}
	orderedIDs := []primitive.ObjectID{}
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, apperrors.BadRequest("Invalid product ID")
		}
		if item.Quantity < 1 {
			return nil, apperrors.BadRequest("Quantity must be at least 1")
		}
		if _, seen := quantities[productID]; !seen {
			orderedIDs = append(orderedIDs, productID)
		}
		quantities[productID] += item.Quantity
	}

	var (
		items    []models.OrderItem
		subtotal float64
	)
	for _, productID := range orderedIDs {
		quantity := quantities[productID]

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NotFound("Product not found")
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, apperrors.BadRequest(fmt.Sprintf("%s is no longer available", product.Name))
		}
		if product.Stock < quantity {
			return nil, apperrors.BadRequest(fmt.Sprintf(
				"Not enough stock for %s. Available: %d", product.Name, product.Stock))
		}

		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			Price:        product.Price,
			Quantity:     quantity,
		})
		subtotal += product.Price * float64(quantity)
	}

	tax := subtotal * taxRate
	shipping := flatShippingFee
	if subtotal > freeShippingThreshold {
		shipping = 0
	}

	// Reserve stock line by line. The conditional decrement refuses to
	// go below zero even under concurrent checkouts; on the first
	// failure everything reserved so far is released.
	reserved := []models.OrderItem{}
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.release(ctx, reserved)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, apperrors.BadRequest(fmt.Sprintf(
					"Not enough stock for %s", item.ProductName))
			}
			return nil, err
		}
		reserved = append(reserved, item)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           subtotal + tax + shipping,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	// Checkout empties the cart; a failure here leaves stale cart
	// lines, not a broken order.
	if err := s.carts.ReplaceItems(ctx, userID, []models.CartItem{}); err != nil {
		zap.L().Warn("failed to clear cart after checkout",
			zap.String("userId", userID.Hex()), zap.Error(err))
	}

	return order, nil
}

func (s *OrderService) release(ctx context.Context, reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			zap.L().Error("failed to release reserved stock",
				zap.String("productId", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// GetForUser returns one of the user's own orders.
func (s *OrderService) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// StatsForUser aggregates the user's order history.
func (s *OrderService) StatsForUser(ctx context.Context, userID primitive.ObjectID) (*repository.OrderStats, error) {
	return s.orders.Stats(ctx, &userID)
}

// Cancel cancels one of the user's own orders. Only pending and
// confirmed orders can be cancelled. Reserved stock is not released
// on cancellation.
func (s *OrderService) Cancel(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	order, err := s.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, apperrors.BadRequest("Only pending or confirmed orders can be cancelled")
	}

	updated, err := s.orders.Update(ctx, order.ID, bson.M{"status": models.OrderCancelled})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, err
	}
	return updated, nil
}

// ListAll returns a page of all orders, optionally filtered by status.
func (s *OrderService) ListAll(ctx context.Context, status models.OrderStatus, page, limit int) (*PaginatedOrders, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.BadRequest("Invalid order status")
	}
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	orders, total, err := s.orders.FindAll(ctx, status, page, limit)
	if err != nil {
		return nil, err
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &PaginatedOrders{
		Data:       orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns any order by ID, for admins.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// Update advances an order's status or payment status, for admins.
func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, req UpdateOrderRequest) (*models.Order, error) {
	updates := bson.M{}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.BadRequest("Invalid order status")
		}
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, apperrors.BadRequest("Invalid payment status")
		}
		updates["paymentStatus"] = *req.PaymentStatus
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("No update fields provided")
	}

	order, err := s.orders.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// Stats aggregates store-wide order totals for the admin dashboard.
func (s *OrderService) Stats(ctx context.Context) (*repository.OrderStats, error) {
	return s.orders.Stats(ctx, nil)
}
