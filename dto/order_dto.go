package dto

type OrderItemDTO struct {
	ProductID string  `json:"productId" binding:"required,objectid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" binding:"gte=0"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderDTO struct {
	Items            []OrderItemDTO `json:"items" binding:"required,min=1,dive"`
	TotalAmount      *float64       `json:"totalAmount"`
	Coupon           string         `json:"coupon"`
	PaymentMethod    string         `json:"paymentMethod" binding:"required,paymentmethod"`
	DeliveryLocation string         `json:"deliveryLocation"`
}

type BuyNowDTO struct {
	ProductID string  `json:"productId" binding:"required,objectid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" binding:"gte=0"`
	Image     string  `json:"image"`
}

// CheckoutDTO orders either the BuyNow product or the whole cart of
// CartOwner (the caller when empty).
type CheckoutDTO struct {
	CartOwner        string     `json:"cartOwner"`
	BuyNow           *BuyNowDTO `json:"buyNow"`
	Coupon           string     `json:"coupon"`
	PaymentMethod    string     `json:"paymentMethod" binding:"required,paymentmethod"`
	DeliveryLocation string     `json:"deliveryLocation"`
}

type ApplyCouponDTO struct {
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
	Code     string  `json:"code"`
}

type UpdateOrderDTO struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,orderstatus"`
	Action        *string `json:"action,omitempty"`
	ActionMessage *string `json:"actionMessage,omitempty"`
	Version       *int    `json:"version,omitempty" binding:"omitempty,min=1"`
}
