package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Tree Care API is running...")
	}
}

func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	}
}
