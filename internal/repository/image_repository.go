package repository

import (
	"errors"
	"path/filepath"
	"strings"

	"imagemarket/api/internal/models"
	"imagemarket/api/internal/store"
)

var ErrImageNotFound = errors.New("image not found")

type ImageRepository struct {
	records *store.Store[models.Image]
}

func NewImageRepository(dataDir string) *ImageRepository {
	return &ImageRepository{
		records: store.New(filepath.Join(dataDir, "images.json"), func(img models.Image) string {
			return img.ID
		}),
	}
}

func (r *ImageRepository) Save(image models.Image) error {
	return r.records.Upsert(image)
}

func (r *ImageRepository) GetByID(id string) (models.Image, error) {
	image, ok := r.records.First(func(img models.Image) bool { return img.ID == id })
	if !ok {
		return models.Image{}, ErrImageNotFound
	}
	return image, nil
}

// Delete removes the record with the given id and reports whether anything
// was removed.
func (r *ImageRepository) Delete(id string) (bool, error) {
	return r.records.Delete(id)
}

func (r *ImageRepository) All() []models.Image {
	return r.records.Load()
}

func (r *ImageRepository) ByUser(userID string) []models.Image {
	return r.records.FindBy(func(img models.Image) bool { return img.UserID == userID })
}

func (r *ImageRepository) ByCategory(category string) []models.Image {
	return r.records.FindBy(func(img models.Image) bool {
		return strings.EqualFold(img.Category, category)
	})
}

// Search matches the query case-insensitively against title, description
// and filename.
func (r *ImageRepository) Search(query string) []models.Image {
	q := strings.ToLower(query)
	return r.records.FindBy(func(img models.Image) bool {
		return strings.Contains(strings.ToLower(img.Title), q) ||
			strings.Contains(strings.ToLower(img.Description), q) ||
			strings.Contains(strings.ToLower(img.Filename), q)
	})
}
