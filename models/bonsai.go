package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Bonsai struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	ScientificName string        `bson:"scientificName" json:"scientificName"`
	Image          string        `bson:"image" json:"image"`
	Owner          string        `bson:"owner" json:"owner"`
	Link           string        `bson:"link" json:"link"`
	Age            int           `bson:"age" json:"age"`
	Description    string        `bson:"description" json:"description"`
	Watering       string        `bson:"watering" json:"watering"`
	Sunlight       string        `bson:"sunlight" json:"sunlight"`
	Pruning        string        `bson:"pruning" json:"pruning"`
	Fertilization  string        `bson:"fertilization" json:"fertilization"`
	Price          float64       `bson:"price" json:"price"`
}

func (b *Bonsai) GetID() bson.ObjectID   { return b.ID }
func (b *Bonsai) SetID(id bson.ObjectID) { b.ID = id }
