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

type mongoOrders struct {
	col *mongo.Collection
}

func (s *mongoOrders) Create(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.ID = bson.NewObjectID()
	o.Version = 1
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, o)
	return mapMongoError(err)
}

func (s *mongoOrders) Get(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	var o models.Order
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, mapMongoError(err)
	}
	return &o, nil
}

func (s *mongoOrders) ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user": userID})
}

func (s *mongoOrders) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoOrders) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrders) Update(ctx context.Context, id bson.ObjectID, upd models.OrderUpdate) (*models.Order, error) {
	filter := bson.M{"_id": id}
	if upd.ExpectedVersion != nil {
		filter["version"] = *upd.ExpectedVersion
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Action != nil {
		set["action"] = *upd.Action
	}

	var o models.Order
	err := s.col.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if upd.ExpectedVersion == nil {
			return nil, ErrNotFound
		}
		n, cerr := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if cerr != nil {
			return nil, cerr
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *mongoOrders) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
