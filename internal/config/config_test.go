package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int64(16<<20), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.Security.JWTTTL)
	assert.True(t, cfg.Security.DemoAuth)

	// Dev frontends are allowed by default instead of reflecting any origin.
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.AllowCORSOrigins)
}
