package store

import (
	"context"
	"time"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoUsers struct {
	col *mongo.Collection
}

func (s *mongoUsers) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (s *mongoUsers) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapMongoError(err)
	}
	return &u, nil
}

func (s *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapMongoError(err)
	}
	return &u, nil
}

func (s *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) EnsureAdmin(ctx context.Context, u *models.User) (bool, error) {
	now := time.Now().UTC()

	// Only insert if it doesn't exist
	filter := bson.M{"email": u.Email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":         u.Name,
			"email":        u.Email,
			"passwordHash": u.PasswordHash,
			"isAdmin":      true,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	res, err := s.col.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}
