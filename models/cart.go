package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CartItem struct {
	ProductID bson.ObjectID `bson:"productId" json:"productId"`
	Name      string        `bson:"name" json:"name"`
	Price     float64       `bson:"price" json:"price"`
	Image     string        `bson:"image" json:"image"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is keyed by an owner id, which may be a user id or a browser id.
type Cart struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"userId" json:"userId"`
	Products  []CartItem    `bson:"products" json:"products"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Products {
		total += item.LineTotal()
	}
	return total
}

type CartView struct {
	*Cart
	Total float64 `json:"total"`
}

func (c *Cart) View() CartView {
	if c.Products == nil {
		c.Products = []CartItem{}
	}
	return CartView{Cart: c, Total: c.Total()}
}
