package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const treeNotFound = "Tree not found"

func GetTrees(s *store.Store) gin.HandlerFunc {
	return listAll(s.Trees)
}

func GetTree(s *store.Store) gin.HandlerFunc {
	return getOne(s.Trees, treeNotFound)
}

// POST /api/trees
func CreateTree(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateTreeDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		tree := models.Tree{
			Name:           body.Name,
			ScientificName: body.ScientificName,
			Image:          body.Image,
			Description:    body.Description,
			Watering:       body.Watering,
			Sunlight:       body.Sunlight,
			SpecialCare:    body.SpecialCare,
			Pruning:        body.Pruning,
			Fertilization:  body.Fertilization,
			Price:          body.Price,
		}
		if err := s.Trees.Create(c.Request.Context(), &tree); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, tree)
	}
}

// PUT /api/trees/:id
func UpdateTree(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", treeNotFound)
		if !ok {
			return
		}
		var body dto.UpdateTreeDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		ctx := c.Request.Context()
		tree, err := s.Trees.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, treeNotFound)
			return
		}

		setIf(&tree.Name, body.Name)
		setIf(&tree.ScientificName, body.ScientificName)
		setIf(&tree.Image, body.Image)
		setIf(&tree.Description, body.Description)
		setIf(&tree.Watering, body.Watering)
		setIf(&tree.Sunlight, body.Sunlight)
		setIf(&tree.SpecialCare, body.SpecialCare)
		setIf(&tree.Pruning, body.Pruning)
		setIf(&tree.Fertilization, body.Fertilization)
		setIf(&tree.Price, body.Price)

		if err := s.Trees.Replace(ctx, tree); err != nil {
			utils.RespondError(c, err, treeNotFound)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

// DELETE /api/trees/:id also drops the tree from every location and disease.
func DeleteTree(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", treeNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := s.Trees.Delete(ctx, id); err != nil {
			utils.RespondError(c, err, treeNotFound)
			return
		}
		for _, kind := range []models.LinkKind{models.LinkLocationTree, models.LinkDiseaseTree} {
			if err := s.Links.DeleteTarget(ctx, kind, id); err != nil {
				utils.RespondError(c, err, "")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tree deleted successfully"})
	}
}
