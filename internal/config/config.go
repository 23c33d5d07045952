package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultSessionSecret is only suitable for local development. Production
// deployments must set SESSION_SECRET.
const DefaultSessionSecret = "fallback-secret-key-for-dev"

// MaxUploadSize caps uploads at 16 MiB.
const MaxUploadSize = 16 * 1024 * 1024

type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Web    WebConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
}

type WebConfig struct {
	SessionSecret string
	TemplateGlob  string
	StaticDir     string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", MaxUploadSize)
	viper.SetDefault("APP_ALLOWED_EXTENSIONS", []string{"png", "jpg", "jpeg", "gif", "bmp"})
	viper.SetDefault("WEB_TEMPLATE_GLOB", "web/templates/*")
	viper.SetDefault("WEB_STATIC_DIR", "./web/static")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Upload: UploadConfig{
			MaxSize:           viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
			AllowedExtensions: viper.GetStringSlice("APP_ALLOWED_EXTENSIONS"),
		},
		Web: WebConfig{
			SessionSecret: viper.GetString("SESSION_SECRET"),
			TemplateGlob:  viper.GetString("WEB_TEMPLATE_GLOB"),
			StaticDir:     viper.GetString("WEB_STATIC_DIR"),
		},
	}

	return cfg, nil
}

// ExtensionAllowed reports whether ext (with or without a leading dot) is in
// the allowed upload set. The comparison is case-insensitive.
func (u UploadConfig) ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return false
	}
	for _, allowed := range u.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
