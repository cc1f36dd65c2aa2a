package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"imagemarket/api/internal/models"
	"imagemarket/api/internal/repository"
	"imagemarket/api/internal/service"
)

type imageResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	UserID       string  `json:"user_id"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Filename     string  `json:"filename"`
	CreatedAt    string  `json:"created_at"`
}

// The thumbnail URL is an alias of the file URL: no separate thumbnail
// file exists, both routes serve the same bytes.
func imageToResponse(c *gin.Context, image models.Image) imageResponse {
	host := baseURL(c)
	return imageResponse{
		ID:           image.ID,
		Title:        image.Title,
		Description:  image.Description,
		URL:          fmt.Sprintf("%s/api/uploads/%s", host, image.ID),
		ThumbnailURL: fmt.Sprintf("%s/api/uploads/%s/thumbnail", host, image.ID),
		UserID:       image.UserID,
		Category:     image.Category,
		Price:        image.Price,
		Rating:       image.Rating,
		Filename:     image.Filename,
		CreatedAt:    image.CreatedAt,
	}
}

func (h HandlerSet) UploadImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file part in the request"})
		return
	}
	defer file.Close()

	image, err := h.uploadService.Upload(service.UploadInput{
		UserID:      user.ID,
		File:        file,
		Header:      header,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Price:       c.PostForm("price"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	host := baseURL(c)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"image": gin.H{
			"id":            image.ID,
			"title":         image.Title,
			"description":   image.Description,
			"url":           fmt.Sprintf("%s/api/uploads/%s", host, image.ID),
			"thumbnail_url": fmt.Sprintf("%s/api/uploads/%s/thumbnail", host, image.ID),
			"category":      image.Category,
			"filename":      image.Filename,
			"created_at":    image.CreatedAt,
		},
	})
}

func (h HandlerSet) ListImages(c *gin.Context) {
	images := h.uploadService.List(service.ListFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		UserID:   c.Query("user_id"),
	})

	result := make([]imageResponse, 0, len(images))
	for _, image := range images {
		result = append(result, imageToResponse(c, image))
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(result),
		"images": result,
	})
}

func (h HandlerSet) GetImageFile(c *gin.Context) {
	image, err := h.uploadService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	if image.Path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	if _, err := os.Stat(image.Path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.File(image.Path)
}

func (h HandlerSet) GetImageMetadata(c *gin.Context) {
	image, err := h.uploadService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, imageToResponse(c, image))
}

type updateImageRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Price       *json.Number `json:"price"`
}

func (h HandlerSet) UpdateImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateImageInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Price != nil {
		price, err := req.Price.Float64()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a number"})
			return
		}
		input.Price = &price
	}

	image, err := h.uploadService.Update(user.ID, c.Param("id"), input)
	if err != nil {
		h.writeImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image updated successfully",
		"image":   imageToResponse(c, image),
	})
}

func (h HandlerSet) DeleteImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := h.uploadService.Delete(user.ID, c.Param("id")); err != nil {
		h.writeImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func (h HandlerSet) writeImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not authorized to modify this image"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
