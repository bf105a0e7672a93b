package models

import "go.mongodb.org/mongo-driver/v2/bson"

type LinkKind string

const (
	LinkLocationTree   LinkKind = "location_tree"
	LinkDiseaseTree    LinkKind = "disease_tree"
	LinkDiseaseProduct LinkKind = "disease_product"
)

// Link is a join record between two catalog documents. Position keeps the
// order in which the targets were referenced by the owner.
type Link struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind     LinkKind      `bson:"kind" json:"kind"`
	OwnerID  bson.ObjectID `bson:"ownerId" json:"ownerId"`
	TargetID bson.ObjectID `bson:"targetId" json:"targetId"`
	Position int           `bson:"position" json:"position"`
}
