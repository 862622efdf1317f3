package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

type GalleryController struct {
	DB *gorm.DB
}

func NewGalleryController(db *gorm.DB) *GalleryController {
	return &GalleryController{DB: db}
}

const galleryUploadDir = "public/uploads/gallery"

// GetAllImages -> public gallery, optional category filter
func (gc *GalleryController) GetAllImages(c *gin.Context) {
	query := gc.DB.Order("created_at desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var images []models.GalleryImage
	if err := query.Find(&images).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Gallery images", images)
}

// UploadImage -> multipart upload, file saved locally, URL stored
func (gc *GalleryController) UploadImage(c *gin.Context) {
	// Cap uploads at 10MB
	c.Request.ParseMultipartForm(10 << 20)

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	lower := strings.ToLower(file.Filename)
	if !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".jpeg") &&
		!strings.HasSuffix(lower, ".png") && !strings.HasSuffix(lower, ".webp") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unsupported image format"))
		return
	}

	if err := os.MkdirAll(galleryUploadDir, 0755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error creating upload directory"))
		return
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), file.Filename)
	filepath := fmt.Sprintf("%s/%s", galleryUploadDir, filename)

	if err := c.SaveUploadedFile(file, filepath); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("error saving image"))
		return
	}

	image := models.GalleryImage{
		Title:     c.PostForm("title"),
		Category:  c.PostForm("category"),
		ImageUrl:  fmt.Sprintf("%s/uploads/gallery/%s", baseURL, filename),
		CreatedAt: time.Now(),
	}

	if err := gc.DB.Create(&image).Error; err != nil {
		os.Remove(filepath)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Image uploaded", image)
}

// DeleteImage -> removes the record and the local file
func (gc *GalleryController) DeleteImage(c *gin.Context) {
	var image models.GalleryImage
	if err := gc.DB.First(&image, c.Param("image_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := gc.DB.Delete(&image).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if idx := strings.Index(image.ImageUrl, "/uploads/gallery/"); idx >= 0 {
		localPath := galleryUploadDir + "/" + image.ImageUrl[idx+len("/uploads/gallery/"):]
		os.Remove(localPath)
	}

	utils.RespondJSON(c, http.StatusOK, "Image deleted", gin.H{"image_id": image.ID})
}
