package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const productNotFound = "Product not found"

func GetProducts(s *store.Store) gin.HandlerFunc {
	return listAll(s.Products)
}

func GetProduct(s *store.Store) gin.HandlerFunc {
	return getOne(s.Products, productNotFound)
}

func AddProduct(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProductDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		product := models.Product{
			Name:        body.Name,
			Category:    body.Category,
			Use:         body.Use,
			Image:       body.Image,
			Description: body.Description,
			Price:       body.Price,
		}
		if err := s.Products.Create(c.Request.Context(), &product); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", productNotFound)
		if !ok {
			return
		}
		var body dto.UpdateProductDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		ctx := c.Request.Context()
		product, err := s.Products.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, productNotFound)
			return
		}

		setIf(&product.Name, body.Name)
		setIf(&product.Category, body.Category)
		setIf(&product.Use, body.Use)
		setIf(&product.Image, body.Image)
		setIf(&product.Description, body.Description)
		setIf(&product.Price, body.Price)

		if err := s.Products.Replace(ctx, product); err != nil {
			utils.RespondError(c, err, productNotFound)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct also unlinks the product from diseases.
func DeleteProduct(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", productNotFound)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := s.Products.Delete(ctx, id); err != nil {
			utils.RespondError(c, err, productNotFound)
			return
		}
		if err := s.Links.DeleteTarget(ctx, models.LinkDiseaseProduct, id); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
