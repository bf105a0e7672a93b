package store

import (
	"context"
	"regexp"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoLocations struct {
	*mongoCatalog[models.Location, *models.Location]
}

func (s *mongoLocations) Create(ctx context.Context, l *models.Location) error {
	l.SyncGeo()
	return s.mongoCatalog.Create(ctx, l)
}

func (s *mongoLocations) Replace(ctx context.Context, l *models.Location) error {
	l.SyncGeo()
	return s.mongoCatalog.Replace(ctx, l)
}

func (s *mongoLocations) Search(ctx context.Context, query string) ([]models.Location, error) {
	escaped := regexp.QuoteMeta(query)
	filter := bson.M{
		"$or": []bson.M{
			{"district": bson.M{"$regex": escaped, "$options": "i"}},
			{"city": bson.M{"$regex": escaped, "$options": "i"}},
			{"state": bson.M{"$regex": escaped, "$options": "i"}},
		},
	}
	return s.find(ctx, filter)
}

// Near relies on the 2dsphere index on geo; $near already sorts by distance.
func (s *mongoLocations) Near(ctx context.Context, c models.Coordinates, radius float64) ([]models.Location, error) {
	filter := bson.M{
		"geo": bson.M{
			"$near": bson.M{
				"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{c.Longitude, c.Latitude}},
				"$maxDistance": radius,
			},
		},
	}
	cursor, err := s.col.Find(ctx, filter, options.Find())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := make([]models.Location, 0)
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
