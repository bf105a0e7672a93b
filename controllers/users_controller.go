package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

// GET /api/users and GET /api/admin/users
func GetUsers(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
