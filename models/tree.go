package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Tree struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	ScientificName string        `bson:"scientificName" json:"scientificName"`
	Image          string        `bson:"image" json:"image"`
	Description    string        `bson:"description" json:"description"`
	Watering       string        `bson:"watering" json:"watering"`
	Sunlight       string        `bson:"sunlight" json:"sunlight"`
	SpecialCare    string        `bson:"specialCare" json:"specialCare"`
	Pruning        string        `bson:"pruning" json:"pruning"`
	Fertilization  string        `bson:"fertilization" json:"fertilization"`
	Price          float64       `bson:"price" json:"price"`
}

func (t *Tree) GetID() bson.ObjectID   { return t.ID }
func (t *Tree) SetID(id bson.ObjectID) { t.ID = id }

// LocatedTree is a tree annotated with the location it was found through.
type LocatedTree struct {
	Tree
	Location LocationRef `json:"location"`
}

type LocationRef struct {
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}
