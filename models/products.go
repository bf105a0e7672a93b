package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Category    string        `bson:"category" json:"category"`
	Use         string        `bson:"use" json:"use"`
	Image       string        `bson:"image" json:"image"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
}

func (p *Product) GetID() bson.ObjectID   { return p.ID }
func (p *Product) SetID(id bson.ObjectID) { p.ID = id }
