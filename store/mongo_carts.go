package store

import (
	"context"
	"errors"
	"time"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// addItemAttempts bounds the increment/upsert loop. A retry only happens
// when a concurrent request created the cart or the line in between.
const addItemAttempts = 3

type mongoCarts struct {
	col *mongo.Collection
}

func (s *mongoCarts) Get(ctx context.Context, owner string) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"userId": owner}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Cart{UserID: owner, Products: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoCarts) AddItem(ctx context.Context, owner string, item models.CartItem) (*models.Cart, error) {
	item.Quantity = 1
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	for attempt := 0; attempt < addItemAttempts; attempt++ {
		now := time.Now().UTC()

		var cart models.Cart
		err := s.col.FindOneAndUpdate(ctx,
			bson.M{"userId": owner, "products.productId": item.ProductID},
			bson.M{
				"$inc": bson.M{"products.$.quantity": 1},
				"$set": bson.M{"updatedAt": now},
			},
			after,
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		// No line for this product yet: push it, creating the cart if needed.
		err = s.col.FindOneAndUpdate(ctx,
			bson.M{"userId": owner, "products.productId": bson.M{"$ne": item.ProductID}},
			bson.M{
				"$push": bson.M{"products": item},
				"$set":  bson.M{"updatedAt": now},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true),
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		if !IsDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, ErrVersionConflict
}

func (s *mongoCarts) SetQuantity(ctx context.Context, owner string, productID bson.ObjectID, quantity int) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"userId": owner, "products.productId": productID},
		bson.M{"$set": bson.M{
			"products.$.quantity": quantity,
			"updatedAt":           time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &cart, nil
}

func (s *mongoCarts) RemoveItem(ctx context.Context, owner string, productID bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"userId": owner},
		bson.M{
			"$pull": bson.M{"products": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Cart{UserID: owner, Products: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoCarts) Clear(ctx context.Context, owner string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"userId": owner},
		bson.M{"$set": bson.M{"products": bson.A{}, "updatedAt": time.Now().UTC()}},
	)
	return err
}
