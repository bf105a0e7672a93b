package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const userContextKey = "user"

// Protect verifies the bearer token and attaches the token's user to the
// request. Any failure stops the chain with 401.
func Protect(users store.UserStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(c, utils.AuthenticationError("Not authorized, no token"), "")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := utils.ValidateToken(tokenStr, secret)
		if err != nil {
			utils.RespondError(c, utils.AuthenticationError("Not authorized, invalid token"), "")
			return
		}

		id, ok := utils.ParseObjectID(claims.UserID)
		if !ok {
			utils.RespondError(c, utils.AuthenticationError("Not authorized, invalid token"), "")
			return
		}
		user, err := users.GetByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, utils.AuthenticationError("Not authorized, invalid token"), "")
			return
		}
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}

		user.PasswordHash = ""
		c.Set(userContextKey, user)
		c.Next()
	}
}

// Admin must run after Protect.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			utils.RespondError(c, utils.AuthorizationError("Access denied. Admins only!"), "")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
