package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
)

const blogNotFound = "Blog not found"

func GetBlogs(s *store.Store) gin.HandlerFunc {
	return listAll(s.Blogs)
}

func GetBlog(s *store.Store) gin.HandlerFunc {
	return getOne(s.Blogs, blogNotFound)
}

func CreateBlog(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateBlogDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		blog := models.Blog{
			Title:     body.Title,
			Content:   body.Content,
			Category:  body.Category,
			Image:     body.Image,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Blogs.Create(c.Request.Context(), &blog); err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, blog)
	}
}

func UpdateBlog(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", blogNotFound)
		if !ok {
			return
		}
		var body dto.UpdateBlogDTO
		if err := utils.BindJSON(c, &body); err != nil {
			utils.RespondError(c, err, "")
			return
		}

		ctx := c.Request.Context()
		blog, err := s.Blogs.Get(ctx, id)
		if err != nil {
			utils.RespondError(c, err, blogNotFound)
			return
		}
		setIf(&blog.Title, body.Title)
		setIf(&blog.Content, body.Content)
		setIf(&blog.Category, body.Category)
		setIf(&blog.Image, body.Image)

		if err := s.Blogs.Replace(ctx, blog); err != nil {
			utils.RespondError(c, err, blogNotFound)
			return
		}
		c.JSON(http.StatusOK, blog)
	}
}

func DeleteBlog(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id", blogNotFound)
		if !ok {
			return
		}
		if err := s.Blogs.Delete(c.Request.Context(), id); err != nil {
			utils.RespondError(c, err, blogNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
	}
}
