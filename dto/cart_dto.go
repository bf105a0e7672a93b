package dto

type AddToCartDTO struct {
	UserID    string  `json:"userId" binding:"required"`
	ProductID string  `json:"productId" binding:"required,objectid"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" binding:"gte=0"`
	Image     string  `json:"image"`
}

type UpdateCartItemDTO struct {
	Quantity *int `json:"quantity" binding:"required"`
}
