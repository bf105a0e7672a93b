package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Disease is stored without its tree/product references; those live in
// the links collection and are populated into DiseaseView on read.
type Disease struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Images    []string      `bson:"images" json:"images"`
	Symptoms  []string      `bson:"symptoms" json:"symptoms"`
	Solutions []string      `bson:"solutions" json:"solutions"`
	Category  string        `bson:"category" json:"category"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (d *Disease) GetID() bson.ObjectID   { return d.ID }
func (d *Disease) SetID(id bson.ObjectID) { d.ID = id }

type DiseaseView struct {
	Disease
	Trees    []Tree    `json:"tree"`
	Products []Product `json:"products"`
}
