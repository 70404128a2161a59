package web

import (
	"encoding/json"
	"os"

	"github.com/routescan/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	Auth     AuthConfig    `json:"auth"`
	Features FeatureConfig `json:"features"`
	Limits   LimitsConfig  `json:"limits"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"api_key"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	ComponentsEnabled bool `json:"components_enabled"`
	LibpostalEnabled  bool `json:"libpostal_enabled"`
}

// LimitsConfig bounds request sizes
type LimitsConfig struct {
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8443,
			Host: "localhost",
		},
		Features: FeatureConfig{
			ComponentsEnabled: true,
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 16 << 20,
		},
	}
}

// ConfigFromApp maps the resolved environment configuration onto Config.
func ConfigFromApp(app *config.App) *Config {
	cfg := DefaultConfig()
	cfg.Server.Host = app.Host
	cfg.Server.Port = app.Port
	cfg.Auth.APIKey = app.APIKey
	cfg.Auth.Enabled = app.APIKey != ""
	cfg.Features.LibpostalEnabled = app.Libpostal
	cfg.Limits.MaxUploadBytes = app.MaxUploadBytes
	return cfg
}
