package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/treenow/treenowbackend/utils"
)

const defaultUploadFolder = "catalog"

// POST /api/uploads/images
// Multipart fields: images (1 to 4 files), name and folder (both optional).
// images is nil when no storage driver is configured.
func UploadImages(images utils.ImageStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if images == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "Image storage is not configured"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			utils.RespondError(c, utils.ValidationError("invalid multipart form"), "")
			return
		}
		files := form.File["images"]

		folder := utils.GenerateSlug(c.PostForm("folder"))
		if folder == "" {
			folder = defaultUploadFolder
		}
		name := strings.TrimSpace(c.PostForm("name"))

		urls, err := utils.UploadImages(c.Request.Context(), images, v, folder, name, files)
		if err != nil {
			utils.RespondError(c, err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"urls": urls})
	}
}
