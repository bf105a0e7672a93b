package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const diseaseNotFound = "Disease not found"

// populateDisease loads the linked trees and products in reference order.
func populateDisease(ctx context.Context, s *store.Store, d models.Disease) (models.DiseaseView, error) {
	view := models.DiseaseView{Disease: d, Trees: []models.Tree{}, Products: []models.Product{}}

	treeIDs, err := s.Links.Targets(ctx, models.LinkDiseaseTree, d.ID)
	if err != nil {
		return view, err
	}
	if view.Trees, err = s.Trees.GetMany(ctx, treeIDs); err != nil {
		return view, err
	}

	productIDs, err := s.Links.Targets(ctx, models.LinkDiseaseProduct, d.ID)
	if err != nil {
		return view, err
	}
	if view.Products, err = s.Products.GetMany(ctx, productIDs); err != nil {
		return view, err
	}
	return view, nil
}

func populateDiseases(ctx context.Context, s *store.Store, list []models.Disease) ([]models.DiseaseView, error) {
	out := make([]models.DiseaseView, 0, len(list))
	for _, d := range list {
		view, err := populateDisease(ctx, s, d)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// GET /api/diseases?tree=<id>
func GetDiseases(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			list []models.Disease
			err  error
		)
		if raw := strings.TrimSpace(c.Query("tree")); raw != "" {
			treeID, ok := utils.ParseObjectID(raw)
			if !ok {
				c.JSON(http.StatusOK, []models.DiseaseView{})
				return
			}
			var ids []bson.ObjectID
			if ids, err = s.Links.Owners(ctx, models.LinkDiseaseTree, treeID); err == nil {
				list, err = s.Diseases.GetMany(ctx, ids)
			}
		} else {
			list, err = s.Diseases.List(ctx)
		}
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		views, err := populateDiseases(ctx, s, list)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetDisease(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", diseaseNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		d, err := s.Diseases.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, diseaseNotFound)
			return
		}
		view, err := populateDisease(ctx, s, *d)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// POST /api/diseases
func CreateDisease(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateDiseaseDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()

		treeIDs, err := resolveIDs(ctx, s.Trees, body.Tree, "tree")
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		productIDs, err := resolveIDs(ctx, s.Products, body.Products, "product")
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		now := time.Now().UTC()
		disease := models.Disease{
			Name:      body.Name,
			Images:    nonNil(body.Images),
			Symptoms:  body.Symptoms,
			Solutions: nonNil(body.Solutions),
			Category:  body.Category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Diseases.Create(ctx, &disease); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		if err := s.Links.Replace(ctx, models.LinkDiseaseTree, disease.ID, treeIDs); err != nil {
			discardCreated(ctx, s, disease.ID, s.Diseases.Delete, models.LinkDiseaseTree)
			utils.RespondError(c, err, "")
			return
		}
		if err := s.Links.Replace(ctx, models.LinkDiseaseProduct, disease.ID, productIDs); err != nil {
			discardCreated(ctx, s, disease.ID, s.Diseases.Delete, models.LinkDiseaseTree, models.LinkDiseaseProduct)
			utils.RespondError(c, err, "")
			return
		}

		view, err := populateDisease(ctx, s, disease)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// PUT /api/diseases/:id
func UpdateDisease(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", diseaseNotFound)
		if !ok {
			return
		}
		var body dto.UpdateDiseaseDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()

		disease, err := s.Diseases.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, diseaseNotFound)
			return
		}

		var treeIDs, productIDs []bson.ObjectID
		if body.Tree != nil {
			if treeIDs, err = resolveIDs(ctx, s.Trees, *body.Tree, "tree"); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}
		if body.Products != nil {
			if productIDs, err = resolveIDs(ctx, s.Products, *body.Products, "product"); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}

		setIf(&disease.Name, body.Name)
		setIf(&disease.Images, body.Images)
		setIf(&disease.Symptoms, body.Symptoms)
		setIf(&disease.Solutions, body.Solutions)
		setIf(&disease.Category, body.Category)
		disease.UpdatedAt = time.Now().UTC()

		if err := s.Diseases.Replace(ctx, disease); err != nil {
			utils.RespondError(c, err, diseaseNotFound)
			return
		}
		if body.Tree != nil {
			if err := s.Links.Replace(ctx, models.LinkDiseaseTree, id, treeIDs); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}
		if body.Products != nil {
			if err := s.Links.Replace(ctx, models.LinkDiseaseProduct, id, productIDs); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}

		view, err := populateDisease(ctx, s, *disease)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func DeleteDisease(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", diseaseNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := s.Diseases.Delete(ctx, id); err != nil {
			utils.RespondError(c, err, diseaseNotFound)
			return
		}
		for _, kind := range []models.LinkKind{models.LinkDiseaseTree, models.LinkDiseaseProduct} {
			if err := s.Links.DeleteOwner(ctx, kind, id); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Disease deleted successfully"})
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
