package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle label of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing,
		OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still be
// cancelled by its owner.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// OrderItem is a snapshot of a product line taken at order creation.
// Later catalog edits never change it.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName  string             `bson:"productName" json:"productName"`
	ProductImage string             `bson:"productImage" json:"productImage"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
}

// ShippingAddress is the delivery destination captured with an order.
type ShippingAddress struct {
	FirstName string `bson:"firstName" json:"firstName" binding:"required"`
	LastName  string `bson:"lastName" json:"lastName" binding:"required"`
	Address   string `bson:"address" json:"address" binding:"required"`
	City      string `bson:"city" json:"city" binding:"required"`
	State     string `bson:"state" json:"state" binding:"required"`
	ZipCode   string `bson:"zipCode" json:"zipCode" binding:"required"`
	Country   string `bson:"country" json:"country" binding:"required"`
	Phone     string `bson:"phone" json:"phone" binding:"required"`
}

// Order is a placed order. Totals always satisfy
// total = subtotal + tax + shipping.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	Shipping        float64            `bson:"shipping" json:"shipping"`
	Total           float64            `bson:"total" json:"total"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
