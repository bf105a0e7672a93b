package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Blog is an editorial post: weather notes, crop prices, farming help.
type Blog struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Category  string        `bson:"category" json:"category"`
	Image     string        `bson:"image" json:"image"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

func (b *Blog) GetID() bson.ObjectID   { return b.ID }
func (b *Blog) SetID(id bson.ObjectID) { b.ID = id }
