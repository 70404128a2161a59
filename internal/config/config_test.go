package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("RS_STR", "value")
	t.Setenv("RS_INT", "42")
	t.Setenv("RS_BAD_INT", "forty")
	t.Setenv("RS_FLOAT", "0.5")
	t.Setenv("RS_BOOL", "yes")
	t.Setenv("RS_LIST", "swe+eng, deu")

	if got := GetEnv("RS_STR", "x"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("RS_MISSING", "x"); got != "x" {
		t.Errorf("GetEnv default = %q", got)
	}
	if got := GetEnvInt("RS_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("RS_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt bad value = %d, want default", got)
	}
	if got := GetEnvFloat("RS_FLOAT", 1); got != 0.5 {
		t.Errorf("GetEnvFloat = %v", got)
	}
	if got := GetEnvBool("RS_BOOL", false); !got {
		t.Errorf("GetEnvBool = false")
	}
	want := []string{"swe", "eng", "deu"}
	if got := GetEnvList("RS_LIST", nil); !reflect.DeepEqual(got, want) {
		t.Errorf("GetEnvList = %v, want %v", got, want)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"WEB_HOST", "WEB_PORT", "HISTORY_DRIVER", "HISTORY_DSN", "OCR_LANGUAGES", "OCR_DPI", "OCR_MAX_DIMENSION", "MAX_UPLOAD_MB", "ROUTESCAN_DEBUG"} {
		t.Setenv(k, "")
	}

	app, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if app.Addr() != "localhost:8443" {
		t.Errorf("Addr() = %q", app.Addr())
	}
	if app.HistoryEnabled() {
		t.Errorf("history should be disabled by default")
	}
	if !reflect.DeepEqual(app.OCRLanguages, []string{"swe"}) {
		t.Errorf("OCRLanguages = %v", app.OCRLanguages)
	}
	if app.OCRDPI != 300 || app.OCRMaxDimension != 2400 {
		t.Errorf("OCR settings = %d/%d", app.OCRDPI, app.OCRMaxDimension)
	}
	if app.MaxUploadBytes != 16<<20 {
		t.Errorf("MaxUploadBytes = %d", app.MaxUploadBytes)
	}
}

func TestFromEnvHistory(t *testing.T) {
	t.Setenv("HISTORY_DSN", "")

	t.Setenv("HISTORY_DRIVER", "sqlite")
	app, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if app.HistoryDSN != filepath.Join("data", "routescan.db") {
		t.Errorf("sqlite DSN = %q", app.HistoryDSN)
	}

	t.Setenv("HISTORY_DRIVER", "mysql")
	if _, err := FromEnv(); err == nil {
		t.Errorf("FromEnv() accepted unknown driver")
	}
}

func TestFromEnvPostgresDSN(t *testing.T) {
	t.Setenv("HISTORY_DRIVER", "postgres")
	t.Setenv("HISTORY_DSN", "")
	for _, k := range []string{"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD"} {
		t.Setenv(k, "")
	}
	t.Setenv("PGDATABASE", "routes")

	app, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	want := "host=localhost port=5432 user=routescan password=routescan dbname=routes sslmode=disable"
	if app.HistoryDSN != want {
		t.Errorf("HistoryDSN = %q, want %q", app.HistoryDSN, want)
	}

	t.Setenv("HISTORY_DSN", "postgres://elsewhere/db")
	if app, _ := FromEnv(); app.HistoryDSN != "postgres://elsewhere/db" {
		t.Errorf("explicit HISTORY_DSN ignored: %q", app.HistoryDSN)
	}
}

func TestFromEnvInvalidPort(t *testing.T) {
	t.Setenv("HISTORY_DRIVER", "")
	t.Setenv("WEB_PORT", "70000")
	if _, err := FromEnv(); err == nil {
		t.Errorf("FromEnv() accepted port 70000")
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RS_FROM_FILE=file\nRS_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RS_PRESET", "process")
	t.Setenv("RS_FROM_FILE", "")
	os.Unsetenv("RS_FROM_FILE")

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv("RS_FROM_FILE"); got != "file" {
		t.Errorf("RS_FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("RS_PRESET"); got != "process" {
		t.Errorf("RS_PRESET = %q, want process", got)
	}
}
