package store

import (
	"context"
	"errors"
	"strings"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongo wires every store to its collection in db.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:     &mongoUsers{col: db.Collection(UsersCollection)},
		Trees:     newMongoCatalog[models.Tree](db.Collection(TreesCollection)),
		Bonsai:    newMongoCatalog[models.Bonsai](db.Collection(BonsaiCollection)),
		Products:  newMongoCatalog[models.Product](db.Collection(ProductsCollection)),
		Diseases:  newMongoCatalog[models.Disease](db.Collection(DiseasesCollection)),
		Blogs:     newMongoCatalog[models.Blog](db.Collection(BlogsCollection)),
		Locations: &mongoLocations{mongoCatalog: newMongoCatalog[models.Location](db.Collection(LocationsCollection))},
		Links:     &mongoLinks{col: db.Collection(LinksCollection)},
		Carts:     &mongoCarts{col: db.Collection(CartsCollection)},
		Orders:    &mongoOrders{col: db.Collection(OrdersCollection)},
	}
}

type mongoCatalog[T any, PT Document[T]] struct {
	col *mongo.Collection
}

func newMongoCatalog[T any, PT Document[T]](col *mongo.Collection) *mongoCatalog[T, PT] {
	return &mongoCatalog[T, PT]{col: col}
}

func (s *mongoCatalog[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoCatalog[T, PT]) find(ctx context.Context, filter any) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *mongoCatalog[T, PT]) Get(ctx context.Context, id bson.ObjectID) (*T, error) {
	var item T
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, mapMongoError(err)
	}
	return &item, nil
}

func (s *mongoCatalog[T, PT]) GetMany(ctx context.Context, ids []bson.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	found, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]T, len(found))
	for _, item := range found {
		byID[PT(&item).GetID()] = item
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *mongoCatalog[T, PT]) Create(ctx context.Context, item *T) error {
	PT(item).SetID(bson.NewObjectID())
	if _, err := s.col.InsertOne(ctx, item); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (s *mongoCatalog[T, PT]) Replace(ctx context.Context, item *T) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": PT(item).GetID()}, item)
	if err != nil {
		return mapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCatalog[T, PT]) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// mapMongoError folds driver errors into the store sentinels.
func mapMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if IsDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000 duplicate key error")
}
