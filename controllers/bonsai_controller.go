package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const bonsaiNotFound = "Bonsai not found"

func GetBonsais(s *store.Store) gin.HandlerFunc {
	return listAll(s.Bonsai)
}

func GetBonsai(s *store.Store) gin.HandlerFunc {
	return getOne(s.Bonsai, bonsaiNotFound)
}

func CreateBonsai(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateBonsaiDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		bonsai := models.Bonsai{
			Name:           body.Name,
			ScientificName: body.ScientificName,
			Image:          body.Image,
			Owner:          body.Owner,
			Link:           body.Link,
			Age:            body.Age,
			Description:    body.Description,
			Watering:       body.Watering,
			Sunlight:       body.Sunlight,
			Pruning:        body.Pruning,
			Fertilization:  body.Fertilization,
			Price:          body.Price,
		}
		if err := s.Bonsai.Create(c.Request.Context(), &bonsai); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, bonsai)
	}
}

func UpdateBonsai(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", bonsaiNotFound)
		if !ok {
			return
		}
		var body dto.UpdateBonsaiDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		ctx := c.Request.Context()
		bonsai, err := s.Bonsai.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, bonsaiNotFound)
			return
		}

		setIf(&bonsai.Name, body.Name)
		setIf(&bonsai.ScientificName, body.ScientificName)
		setIf(&bonsai.Image, body.Image)
		setIf(&bonsai.Owner, body.Owner)
		setIf(&bonsai.Link, body.Link)
		setIf(&bonsai.Age, body.Age)
		setIf(&bonsai.Description, body.Description)
		setIf(&bonsai.Watering, body.Watering)
		setIf(&bonsai.Sunlight, body.Sunlight)
		setIf(&bonsai.Pruning, body.Pruning)
		setIf(&bonsai.Fertilization, body.Fertilization)
		setIf(&bonsai.Price, body.Price)

		if err := s.Bonsai.Replace(ctx, bonsai); err != nil {
			utils.RespondError(c, err, bonsaiNotFound)
			return
		}
		c.JSON(http.StatusOK, bonsai)
	}
}

func DeleteBonsai(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", bonsaiNotFound)
		if !ok {
			return
		}
		if err := s.Bonsai.Delete(c.Request.Context(), id); err != nil {
			utils.RespondError(c, err, bonsaiNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bonsai deleted successfully"})
	}
}
