package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// pathID reads an id path parameter. A malformed id cannot resolve to a
// document, so it answers 404 with notFound.
func pathID(c *gin.Context, param, notFound string) (bson.ObjectID, bool) {
	id, ok := utils.ParseObjectID(c.Param(param))
	if !ok {
		utils.RespondError(c, utils.NotFoundError(notFound), notFound)
		return bson.NilObjectID, false
	}
	return id, true
}

func listAll[T any](items store.Catalog[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := items.List(c.Request.Context())
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func getOne[T any](items store.Catalog[T], notFound string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", notFound)
		if !ok {
			return
		}
		item, err := items.Get(c.Request.Context(), id)
		if err != nil {
			utils.RespondError(c, err, notFound)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// resolveIDs parses body ids, drops repeats and checks that every id names
// an existing document.
func resolveIDs[T any](ctx context.Context, items store.Catalog[T], raw []string, what string) ([]bson.ObjectID, error) {
	ids := make([]bson.ObjectID, 0, len(raw))
	seen := make(map[bson.ObjectID]bool, len(raw))
	for _, s := range raw {
		id, ok := utils.ParseObjectID(s)
		if !ok {
			return nil, utils.ValidationError("invalid " + what + " id: " + s)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	found, err := items.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, utils.ValidationError("one or more " + what + " ids do not exist")
	}
	return ids, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// discardCreated removes a document whose link records could not be written,
// together with any links already stored for it.
func discardCreated(ctx context.Context, s *store.Store, id bson.ObjectID, remove func(context.Context, bson.ObjectID) error, kinds ...models.LinkKind) {
	ctx = context.WithoutCancel(ctx)
	for _, kind := range kinds {
		if err := s.Links.DeleteOwner(ctx, kind, id); err != nil {
			log.Printf("discard %s links of %s: %v", kind, id.Hex(), err)
		}
	}
	if err := remove(ctx, id); err != nil {
		log.Printf("discard %s: %v", id.Hex(), err)
	}
}
