package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
	PaymentCOD  PaymentMethod = "COD"
)

var PaymentMethods = []PaymentMethod{PaymentUPI, PaymentCard, PaymentCOD}

func (p PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if v == p {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "Pending"
	OrderStatusShipped       OrderStatus = "Shipped"
	OrderStatusOnGoing       OrderStatus = "On Going"
	OrderStatusCancel        OrderStatus = "Cancel"
	OrderStatusReady         OrderStatus = "Ready"
	OrderStatusArrivingToday OrderStatus = "Arriving Today"
	OrderStatusCompleted     OrderStatus = "Completed"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusOnGoing,
	OrderStatusCancel,
	OrderStatusReady,
	OrderStatusArrivingToday,
	OrderStatusCompleted,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User             bson.ObjectID `bson:"user" json:"user"`
	Items            []CartItem    `bson:"items" json:"items"`
	Subtotal         float64       `bson:"subtotal" json:"subtotal"`
	Discount         float64       `bson:"discount" json:"discount"`
	Coupon           string        `bson:"coupon,omitempty" json:"coupon,omitempty"`
	TotalAmount      float64       `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod    PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	Status           OrderStatus   `bson:"status" json:"status"`
	Action           string        `bson:"action" json:"action"`
	OrderDate        string        `bson:"orderdate" json:"orderdate"`
	DeliveryLocation string        `bson:"deliveryLocation,omitempty" json:"deliveryLocation,omitempty"`
	Version          int           `bson:"version" json:"version"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// OrderUpdate carries the admin-mutable fields. Nil fields are untouched;
// a nil ExpectedVersion skips the compare-and-swap.
type OrderUpdate struct {
	Status          *OrderStatus
	Action          *string
	ExpectedVersion *int
}

// AdminOrderView is an order with its user populated.
type AdminOrderView struct {
	Order
	User *UserSummary `json:"user"`
}
