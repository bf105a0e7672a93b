package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	IsAdmin      bool          `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the public view of a user attached to orders and profiles.
type UserSummary struct {
	ID      bson.ObjectID `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	IsAdmin bool          `json:"isAdmin"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func (u *User) GetID() bson.ObjectID   { return u.ID }
func (u *User) SetID(id bson.ObjectID) { u.ID = id }
