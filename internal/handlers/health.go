package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Store       string `json:"store"`
	Uploads     string `json:"uploads"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	storeStatus := "ok"
	if err := dirUsable(h.cfg.Storage.DataDir); err != nil {
		storeStatus = "error"
		h.log.Error().Err(err).Msg("data dir not usable")
	}

	uploadStatus := "ok"
	if err := dirUsable(h.cfg.Storage.UploadDir); err != nil {
		uploadStatus = "error"
		h.log.Error().Err(err).Msg("upload dir not usable")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Store:       storeStatus,
		Uploads:     uploadStatus,
		Environment: h.cfg.Environment,
	})
}

func dirUsable(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	_, err := os.Stat(path)
	return err
}
