package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"imagemarket/api/internal/config"
	"imagemarket/api/internal/middleware"
	"imagemarket/api/internal/models"
	"imagemarket/api/internal/repository"
	"imagemarket/api/internal/security"
	"imagemarket/api/internal/service"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	authService   *service.AuthService
	uploadService *service.UploadService
	users         *repository.UserRepository
	images        *repository.ImageRepository
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(cfg.Storage.DataDir)
	imageRepo := repository.NewImageRepository(cfg.Storage.DataDir)
	creds := security.NewCredentials(cfg.Security.DemoAuth)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		authService:   service.NewAuthService(userRepo, creds, cfg, log),
		uploadService: service.NewUploadService(imageRepo, cfg, log),
		users:         userRepo,
		images:        imageRepo,
	}
}

// UploadService exposes the upload service for maintenance jobs.
func (h HandlerSet) UploadService() *service.UploadService {
	return h.uploadService
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)

	profile := router.Group("/auth")
	profile.Use(middleware.Auth(h.cfg, h.users))
	profile.GET("/profile", h.GetProfile)
	profile.PUT("/profile", h.UpdateProfile)

	uploads := router.Group("/uploads")
	uploads.GET("", h.ListImages)
	uploads.GET("/:id", h.GetImageFile)
	uploads.GET("/:id/thumbnail", h.GetImageFile)
	uploads.GET("/:id/metadata", h.GetImageMetadata)

	owned := router.Group("/uploads")
	owned.Use(middleware.Auth(h.cfg, h.users))
	owned.POST("", h.UploadImage)
	owned.PUT("/:id", h.UpdateImage)
	owned.DELETE("/:id", h.DeleteImage)
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("current_user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}

// baseURL reconstructs the externally visible prefix for file and
// thumbnail links.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
