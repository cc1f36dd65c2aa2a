package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"imagemarket/api/internal/config"
	"imagemarket/api/internal/ids"
	"imagemarket/api/internal/media"
	"imagemarket/api/internal/models"
	"imagemarket/api/internal/repository"
)

var ErrNotOwner = errors.New("caller does not own this image")

type UploadService struct {
	images *repository.ImageRepository
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewUploadService(images *repository.ImageRepository, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		images: images,
		cfg:    cfg,
		log:    log,
	}
}

type UploadInput struct {
	UserID      string
	File        multipart.File
	Header      *multipart.FileHeader
	Title       string
	Description string
	Category    string
	Price       string
}

// Upload writes the file to the upload directory under a collision-proof
// name, downsamples it best-effort, and persists the metadata record.
func (s *UploadService) Upload(input UploadInput) (models.Image, error) {
	if input.File == nil || input.Header == nil || input.Header.Filename == "" {
		return models.Image{}, fmt.Errorf("no file selected")
	}
	if !media.AllowedExtension(input.Header.Filename) {
		return models.Image{}, fmt.Errorf("file type not allowed. Allowed types: %s", media.AllowedExtensionList())
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		return models.Image{}, fmt.Errorf("create upload dir: %w", err)
	}

	filename := media.UniqueFilename(input.Header.Filename)
	path, err := filepath.Abs(filepath.Join(s.cfg.Storage.UploadDir, filename))
	if err != nil {
		return models.Image{}, fmt.Errorf("resolve upload path: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return models.Image{}, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, input.File); err != nil {
		dst.Close()
		return models.Image{}, fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return models.Image{}, fmt.Errorf("close file: %w", err)
	}

	// Oversized originals are shrunk to fit 1920x1080. Failure here is
	// non-fatal: corrupt or unsupported files stay accepted, unresized.
	if err := media.DownsampleFile(path); err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("downsample skipped")
	}

	title := input.Title
	if title == "" {
		title = "Untitled"
	}
	category := input.Category
	if category == "" {
		category = models.DefaultCategory
	}

	price := models.DefaultPrice()
	if input.Price != "" {
		if parsed, err := strconv.ParseFloat(input.Price, 64); err == nil {
			price = parsed
		} else {
			s.log.Debug().Str("price", input.Price).Msg("unparsable price, using default")
		}
	}

	image := models.Image{
		ID:          ids.New(),
		Title:       title,
		Description: input.Description,
		Filename:    filename,
		UserID:      input.UserID,
		Path:        path,
		Price:       price,
		Category:    category,
		Rating:      models.DefaultRating(),
		CreatedAt:   models.Timestamp(),
	}

	if err := s.images.Save(image); err != nil {
		return models.Image{}, fmt.Errorf("save metadata: %w", err)
	}

	s.log.Info().Str("image_id", image.ID).Str("user_id", input.UserID).Msg("image uploaded")

	return image, nil
}

type ListFilter struct {
	Query    string
	Category string
	UserID   string
}

// List applies at most one filter: free-text query first, then category
// ("all" means no category filter), then user id.
func (s *UploadService) List(filter ListFilter) []models.Image {
	switch {
	case filter.Query != "":
		return s.images.Search(filter.Query)
	case filter.Category != "" && filter.Category != "all":
		return s.images.ByCategory(filter.Category)
	case filter.UserID != "":
		return s.images.ByUser(filter.UserID)
	default:
		return s.images.All()
	}
}

func (s *UploadService) Get(id string) (models.Image, error) {
	return s.images.GetByID(id)
}

type UpdateImageInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
}

func (s *UploadService) Update(userID, imageID string, input UpdateImageInput) (models.Image, error) {
	image, err := s.images.GetByID(imageID)
	if err != nil {
		return models.Image{}, err
	}
	if image.UserID != userID {
		return models.Image{}, ErrNotOwner
	}

	if input.Title != nil {
		image.Title = *input.Title
	}
	if input.Description != nil {
		image.Description = *input.Description
	}
	if input.Category != nil {
		image.Category = *input.Category
	}
	if input.Price != nil {
		image.Price = *input.Price
	}

	if err := s.images.Save(image); err != nil {
		return models.Image{}, err
	}
	return image, nil
}

// Delete removes the metadata record and then the file. File removal is
// best-effort: a failure still leaves the delete reported as successful.
func (s *UploadService) Delete(userID, imageID string) error {
	image, err := s.images.GetByID(imageID)
	if err != nil {
		return err
	}
	if image.UserID != userID {
		return ErrNotOwner
	}

	removed, err := s.images.Delete(imageID)
	if err != nil {
		return err
	}
	if !removed {
		return repository.ErrImageNotFound
	}

	if image.Path != "" {
		if err := os.Remove(image.Path); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("image_id", imageID).Msg("file removal failed")
		}
	}
	return nil
}

// SweepOrphans removes files in the upload directory that no image record
// references. Uploads are not atomic, so a crash can leave files behind.
func (s *UploadService) SweepOrphans() (int, error) {
	entries, err := os.ReadDir(s.cfg.Storage.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	referenced := make(map[string]struct{})
	for _, image := range s.images.All() {
		referenced[image.Filename] = struct{}{}
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		path := filepath.Join(s.cfg.Storage.UploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.log.Warn().Err(err).Str("file", entry.Name()).Msg("orphan removal failed")
			continue
		}
		removed++
	}
	return removed, nil
}
