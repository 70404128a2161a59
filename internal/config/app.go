package config

import (
	"fmt"
	"path/filepath"
)

// App is the resolved runtime configuration shared by the CLI and the web
// server.
type App struct {
	Host string
	Port int

	// HistoryDriver is "postgres", "sqlite" or empty to disable run history.
	HistoryDriver string
	HistoryDSN    string

	OCRLanguages    []string
	OCRDPI          int
	OCRMaxDimension int

	MaxUploadBytes int64
	// APIKey, when set, is required in X-API-Key on every API call.
	APIKey string
	// Libpostal reparses addresses with libpostal for component output.
	Libpostal bool
	Debug     bool
}

// Load reads the .env file, if any, and resolves App from the environment.
func Load() (*App, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv resolves App from the current process environment only.
func FromEnv() (*App, error) {
	app := &App{
		Host:            GetEnv("WEB_HOST", "localhost"),
		Port:            GetEnvInt("WEB_PORT", 8443),
		HistoryDriver:   GetEnv("HISTORY_DRIVER", ""),
		OCRLanguages:    GetEnvList("OCR_LANGUAGES", []string{"swe"}),
		OCRDPI:          GetEnvInt("OCR_DPI", 300),
		OCRMaxDimension: GetEnvInt("OCR_MAX_DIMENSION", 2400),
		MaxUploadBytes:  int64(GetEnvInt("MAX_UPLOAD_MB", 16)) << 20,
		APIKey:          GetEnv("WEB_API_KEY", ""),
		Libpostal:       GetEnvBool("LIBPOSTAL_ENABLED", false),
		Debug:           GetEnvBool("ROUTESCAN_DEBUG", false),
	}

	switch app.HistoryDriver {
	case "":
	case "postgres":
		app.HistoryDSN = GetEnv("HISTORY_DSN", postgresDSN())
	case "sqlite":
		app.HistoryDSN = GetEnv("HISTORY_DSN", filepath.Join("data", "routescan.db"))
	default:
		return nil, fmt.Errorf("unknown HISTORY_DRIVER %q (want postgres or sqlite)", app.HistoryDriver)
	}

	if app.Port <= 0 || app.Port > 65535 {
		return nil, fmt.Errorf("invalid WEB_PORT %d", app.Port)
	}
	return app, nil
}

// HistoryEnabled reports whether run history should be persisted.
func (a *App) HistoryEnabled() bool {
	return a.HistoryDriver != ""
}

// Addr is the listen address for the web server.
func (a *App) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// postgresDSN builds the lib/pq connection string from the PG* variables.
// It is the only place the postgres defaults live.
func postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		GetEnv("PGHOST", "localhost"),
		GetEnv("PGPORT", "5432"),
		GetEnv("PGUSER", "routescan"),
		GetEnv("PGPASSWORD", "routescan"),
		GetEnv("PGDATABASE", "routescan"),
	)
}
