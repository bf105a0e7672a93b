package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const invalidCredentials = "Invalid email or password"

// POST /api/users/register
func Register(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		ctx := c.Request.Context()
		email := strings.ToLower(strings.TrimSpace(body.Email))

		_, err := users.GetByEmail(ctx, email)
		if err == nil {
			utils.RespondError(c, utils.ValidationError("User already exists"), "")
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, err, "")
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			utils.RespondError(c, utils.InternalError("failed to hash password", err), "")
			return
		}

		user := models.User{
			Name:         strings.TrimSpace(body.Name),
			Email:        email,
			PasswordHash: hash,
		}
		if err := users.Create(ctx, &user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				utils.RespondError(c, utils.ValidationError("User already exists"), "")
				return
			}
			utils.RespondError(c, err, "")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// POST /api/users/login
func Login(users store.UserStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		user, err := users.GetByEmail(c.Request.Context(), email)
		if errors.Is(err, store.ErrNotFound) {
			_ = utils.RejectPassword(body.Password)
			utils.RespondError(c, utils.AuthenticationError(invalidCredentials), "")
			return
		}
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			utils.RespondError(c, utils.AuthenticationError(invalidCredentials), "")
			return
		}

		token, err := utils.GenerateToken(secret, user.ID.Hex(), user.IsAdmin, utils.TokenTTL)
		if err != nil {
			utils.RespondError(c, utils.InternalError("failed to generate token", err), "")
			return
		}

		c.JSON(http.StatusOK, dto.LoginResponse{
			ID:      user.ID.Hex(),
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
			Token:   token,
		})
	}
}

// GET /api/users/profile
func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			utils.RespondError(c, utils.NotFoundError("User not found"), "")
			return
		}
		c.JSON(http.StatusOK, user.Summary())
	}
}
