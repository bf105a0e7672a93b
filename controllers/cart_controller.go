package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const cartItemNotFound = "Item not found in cart"

// Carts are keyed by a caller-chosen owner id, so these routes are public.

// POST /api/cart/add
func AddToCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.AddToCartDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		productID, _ := utils.ParseObjectID(body.ProductID)
		owner := strings.TrimSpace(body.UserID)
		if owner == "" {
			utils.RespondError(c, utils.ValidationError("userId is required"), "")
			return
		}

		cart, err := carts.AddItem(c.Request.Context(), owner, models.CartItem{
			ProductID: productID,
			Name:      body.Name,
			Price:     body.Price,
			Image:     body.Image,
		})
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart", "cart": cart.View()})
	}
}

// GET /api/cart/:userId
func GetCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), c.Param("userId"))
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, cart.View())
	}
}

// PUT /api/cart/:userId/items/:productId
func UpdateCartItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathID(c, "productId", cartItemNotFound)
		if !ok {
			return
		}
		var body dto.UpdateCartItemDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		if *body.Quantity < 1 {
			utils.RespondError(c, utils.ValidationError("quantity must be at least 1"), "")
			return
		}

		cart, err := carts.SetQuantity(c.Request.Context(), c.Param("userId"), productID, *body.Quantity)
		if err != nil {
			utils.RespondError(c, err, cartItemNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart.View()})
	}
}

// DELETE /api/cart/:userId/items/:productId succeeds whether or not the line exists.
func RemoveCartItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner := c.Param("userId")

		var (
			cart *models.Cart
			err  error
		)
		if productID, ok := utils.ParseObjectID(c.Param("productId")); ok {
			cart, err = carts.RemoveItem(ctx, owner, productID)
		} else {
			cart, err = carts.Get(ctx, owner)
		}
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": cart.View()})
	}
}

// DELETE /api/cart/:userId
func ClearCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), c.Param("userId")); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
