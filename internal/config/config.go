package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	// DataDir holds the users.json and images.json documents.
	DataDir string
	// UploadDir holds the raw uploaded files.
	UploadDir      string
	MaxUploadBytes int64
}

type SecurityConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
	// DemoAuth selects the accept-any-password credential verifier.
	// Set to false to verify bcrypt hashes instead.
	DemoAuth bool
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Storage          StorageConfig
	Security         SecurityConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("IMAGEMARKET")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("storage.datadir", "./data")
	v.SetDefault("storage.uploaddir", "./data/uploads")
	v.SetDefault("storage.maxuploadbytes", 16<<20) // 16MB

	v.SetDefault("security.jwtsecret", "dev-secret-change-in-production")
	v.SetDefault("security.jwtttl", "1h")
	v.SetDefault("security.demoauth", true)

	v.SetDefault("allowcorsorigins", "http://localhost:3000,http://localhost:3001")
}
