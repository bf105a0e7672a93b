package store

import (
	"context"

	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoLinks struct {
	col *mongo.Collection
}

func (s *mongoLinks) Replace(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID, targets []bson.ObjectID) error {
	if err := s.DeleteOwner(ctx, kind, ownerID); err != nil {
		return err
	}
	targets = dedupeIDs(targets)
	if len(targets) == 0 {
		return nil
	}
	docs := make([]any, 0, len(targets))
	for i, t := range targets {
		docs = append(docs, models.Link{
			ID:       bson.NewObjectID(),
			Kind:     kind,
			OwnerID:  ownerID,
			TargetID: t,
			Position: i,
		})
	}
	_, err := s.col.InsertMany(ctx, docs)
	return mapMongoError(err)
}

func (s *mongoLinks) Targets(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) ([]bson.ObjectID, error) {
	links, err := s.find(ctx, bson.M{"kind": kind, "ownerId": ownerID}, bson.D{{Key: "position", Value: 1}})
	if err != nil {
		return nil, err
	}
	ids := make([]bson.ObjectID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.TargetID)
	}
	return ids, nil
}

func (s *mongoLinks) Owners(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) ([]bson.ObjectID, error) {
	links, err := s.find(ctx, bson.M{"kind": kind, "targetId": targetID}, bson.D{{Key: "ownerId", Value: 1}})
	if err != nil {
		return nil, err
	}
	ids := make([]bson.ObjectID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.OwnerID)
	}
	return ids, nil
}

func (s *mongoLinks) DeleteOwner(ctx context.Context, kind models.LinkKind, ownerID bson.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"kind": kind, "ownerId": ownerID})
	return err
}

func (s *mongoLinks) DeleteTarget(ctx context.Context, kind models.LinkKind, targetID bson.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"kind": kind, "targetId": targetID})
	return err
}

func (s *mongoLinks) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Link, error) {
	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	links := make([]models.Link, 0)
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func dedupeIDs(ids []bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
