package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "12 Market Street",
		City:      "San Francisco",
		State:     "CA",
		ZipCode:   "94103",
		Country:   "USA",
		Phone:     "+14155550123",
	}
}

func testProduct(id primitive.ObjectID, name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     name,
		Brand:    "Omega",
		Price:    price,
		Images:   []string{"https://cdn.example.com/" + name + ".jpg"},
		Stock:    stock,
		IsActive: true,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("computes totals with flat shipping", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		products.On("FindByID", ctx, productID).Return(testProduct(productID, "Seamaster", 1200.0, 10), nil).Once()
		products.On("DecrementStock", ctx, productID, 2).Return(nil).Once()
		orders.On("Insert", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		carts.On("ReplaceItems", ctx, userID, []models.CartItem{}).Return(nil).Once()

		order, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 2}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2400.0, order.Subtotal)
		assert.Equal(t, 240.0, order.Tax)
		assert.Equal(t, 50.0, order.Shipping)
		assert.Equal(t, order.Subtotal+order.Tax+order.Shipping, order.Total)
		assert.Equal(t, models.OrderPending, order.Status)
		assert.Equal(t, models.PaymentPending, order.PaymentStatus)
		products.AssertExpectations(t)
		orders.AssertExpectations(t)
		carts.AssertExpectations(t)
	})

	t.Run("waives shipping above threshold", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		products.On("FindByID", ctx, productID).Return(testProduct(productID, "Daytona", 6000.0, 5), nil).Once()
		products.On("DecrementStock", ctx, productID, 1).Return(nil).Once()
		orders.On("Insert", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		carts.On("ReplaceItems", ctx, userID, []models.CartItem{}).Return(nil).Once()

		order, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "card",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, order.Shipping)
		assert.Equal(t, 6600.0, order.Total)
	})

	t.Run("snapshots product details", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		product := testProduct(productID, "Speedmaster", 7200.0, 3)
		products.On("FindByID", ctx, productID).Return(product, nil).Once()
		products.On("DecrementStock", ctx, productID, 1).Return(nil).Once()
		orders.On("Insert", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		carts.On("ReplaceItems", ctx, userID, []models.CartItem{}).Return(nil).Once()

		order, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.NoError(t, err)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, "Speedmaster", order.Items[0].ProductName)
		assert.Equal(t, product.Images[0], order.Items[0].ProductImage)
		assert.Equal(t, 7200.0, order.Items[0].Price)
	})

	t.Run("collapses duplicate lines", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		products.On("FindByID", ctx, productID).Return(testProduct(productID, "Pelagos", 4800.0, 10), nil).Once()
		products.On("DecrementStock", ctx, productID, 5).Return(nil).Once()
		orders.On("Insert", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		carts.On("ReplaceItems", ctx, userID, []models.CartItem{}).Return(nil).Once()

		order, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItem{
				{ProductID: productID.Hex(), Quantity: 2},
				{ProductID: productID.Hex(), Quantity: 3},
			},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.NoError(t, err)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, 5, order.Items[0].Quantity)
	})

	t.Run("rejects when stock is short before reserving", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		products.On("FindByID", ctx, productID).Return(testProduct(productID, "Nautilus", 85000.0, 2), nil).Once()

		_, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 3}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.Error(t, err)
		assert.Equal(t, "Not enough stock for Nautilus. Available: 2", apperrors.From(err).Message)
		products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
		orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("releases reserved stock when a later line fails", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		firstID := primitive.NewObjectID()
		secondID := primitive.NewObjectID()
		products.On("FindByID", ctx, firstID).Return(testProduct(firstID, "Submariner", 14500.0, 5), nil).Once()
		products.On("FindByID", ctx, secondID).Return(testProduct(secondID, "GMT-Master", 18500.0, 2), nil).Once()
		products.On("DecrementStock", ctx, firstID, 1).Return(nil).Once()
		// A concurrent checkout drained the second product between the
		// read and the reservation.
		products.On("DecrementStock", ctx, secondID, 2).Return(repository.ErrInsufficientStock).Once()
		products.On("IncrementStock", ctx, firstID, 1).Return(nil).Once()

		_, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items: []CreateOrderItem{
				{ProductID: firstID.Hex(), Quantity: 1},
				{ProductID: secondID.Hex(), Quantity: 2},
			},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.Error(t, err)
		assert.Equal(t, "Not enough stock for GMT-Master", apperrors.From(err).Message)
		products.AssertExpectations(t)
		orders.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("releases stock when the insert fails", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		products.On("FindByID", ctx, productID).Return(testProduct(productID, "Reverso", 8500.0, 5), nil).Once()
		products.On("DecrementStock", ctx, productID, 1).Return(nil).Once()
		orders.On("Insert", ctx, mock.AnythingOfType("*models.Order")).Return(assert.AnError).Once()
		products.On("IncrementStock", ctx, productID, 1).Return(nil).Once()

		_, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.Error(t, err)
		products.AssertExpectations(t)
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		productID := primitive.NewObjectID()
		inactive := testProduct(productID, "Calatrava", 38000.0, 4)
		inactive.IsActive = false
		products.On("FindByID", ctx, productID).Return(inactive, nil).Once()

		_, err := svc.Create(ctx, userID, CreateOrderRequest{
			Items:           []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
			ShippingAddress: testAddress(),
			PaymentMethod:   "cod",
		})

		assert.Error(t, err)
		assert.Equal(t, "Calatrava is no longer available", apperrors.From(err).Message)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("cancels a pending order without restoring stock", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		orderID := primitive.NewObjectID()
		pending := &models.Order{ID: orderID, UserID: userID, Status: models.OrderPending}
		cancelled := &models.Order{ID: orderID, UserID: userID, Status: models.OrderCancelled}

		orders.On("FindByIDAndUser", ctx, orderID, userID).Return(pending, nil).Once()
		orders.On("Update", ctx, orderID, bson.M{"status": models.OrderCancelled}).Return(cancelled, nil).Once()

		order, err := svc.Cancel(ctx, orderID, userID)

		assert.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, order.Status)
		products.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects cancelling a shipped order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		orderID := primitive.NewObjectID()
		shipped := &models.Order{ID: orderID, UserID: userID, Status: models.OrderShipped}
		orders.On("FindByIDAndUser", ctx, orderID, userID).Return(shipped, nil).Once()

		_, err := svc.Cancel(ctx, orderID, userID)

		assert.Error(t, err)
		assert.Equal(t, "Only pending or confirmed orders can be cancelled", apperrors.From(err).Message)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects another user's order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, products, carts)

		orderID := primitive.NewObjectID()
		orders.On("FindByIDAndUser", ctx, orderID, userID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Cancel(ctx, orderID, userID)

		assert.Error(t, err)
		assert.Equal(t, 404, apperrors.From(err).Code)
	})
}

func TestUpdateOrderAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductRepository), new(MockCartRepository))

		bogus := models.OrderStatus("teleported")
		_, err := svc.Update(ctx, primitive.NewObjectID(), UpdateOrderRequest{Status: &bogus})

		assert.Error(t, err)
		assert.Equal(t, 400, apperrors.From(err).Code)
	})

	t.Run("updates payment status", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductRepository), new(MockCartRepository))

		orderID := primitive.NewObjectID()
		paid := models.PaymentPaid
		updated := &models.Order{ID: orderID, PaymentStatus: paid}
		orders.On("Update", ctx, orderID, bson.M{"paymentStatus": paid}).Return(updated, nil).Once()

		order, err := svc.Update(ctx, orderID, UpdateOrderRequest{PaymentStatus: &paid})

		assert.NoError(t, err)
		assert.Equal(t, paid, order.PaymentStatus)
	})
}
