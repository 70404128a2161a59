package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routescan/internal/history"
	"github.com/routescan/internal/ocr"
	"github.com/routescan/internal/report"
)

type memoryStore struct {
	mu   sync.Mutex
	runs []*history.Run
}

func (m *memoryStore) Save(_ context.Context, run *history.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id uuid.UUID) (*history.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", history.ErrRunNotFound, id)
}

func (m *memoryStore) List(_ context.Context, limit int) ([]history.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []history.Summary{}
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.runs[i]
		out = append(out, history.Summary{ID: r.ID, Source: r.Source, LineCount: r.LineCount, AddressCount: len(r.Addresses)})
	}
	return out, nil
}

const manifest = "BRF Solen Storgatan 12 Stockholm extra junk\nLillvägen l2B\nSida 1"

func newTestServer(t *testing.T, deps Dependencies) http.Handler {
	t.Helper()
	s, err := NewServer(DefaultConfig(), deps)
	require.NoError(t, err)
	return s.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(t, Dependencies{}), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestExtract(t *testing.T) {
	h := newTestServer(t, Dependencies{})

	rec := doJSON(t, h, http.MethodPost, "/api/extract", map[string]any{"text": manifest})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[report.Report](t, rec)
	assert.Equal(t, []string{"Storgatan 12, Stockholm", "Lillvägen 12B, Stockholm"}, got.Addresses)
	assert.Equal(t, 3, got.LineCount)
	assert.Nil(t, got.Lines)
	assert.Nil(t, got.RunID)
}

func TestExtractExplainAndComponents(t *testing.T) {
	h := newTestServer(t, Dependencies{})

	rec := doJSON(t, h, http.MethodPost, "/api/extract", map[string]any{
		"text": manifest, "explain": true, "components": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[report.Report](t, rec)
	require.Len(t, got.Lines, 3)
	assert.Equal(t, "no_street_match", string(got.Lines[2].Reason))
	require.Len(t, got.Components, 2)
	assert.Equal(t, "12B", got.Components[1].HouseNumber)
}

func TestExtractEmptyText(t *testing.T) {
	rec := doJSON(t, newTestServer(t, Dependencies{}), http.MethodPost, "/api/extract", map[string]any{"text": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, rec.Body.Bytes(), "addresses")))
}

func mustField(t *testing.T, body []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return m[key]
}

func TestExtractBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newTestServer(t, Dependencies{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractBodyTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxUploadBytes = 64
	s, err := NewServer(cfg, Dependencies{})
	require.NoError(t, err)

	body := `{"text": "` + strings.Repeat("Storgatan 12 ", 20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large", decode[map[string]string](t, rec)["error"])
}

func TestExtractSaveAndFetchRun(t *testing.T) {
	store := &memoryStore{}
	h := newTestServer(t, Dependencies{Store: store})

	rec := doJSON(t, h, http.MethodPost, "/api/extract", map[string]any{"text": manifest, "save": true, "source": "route-7"})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[report.Report](t, rec)
	require.NotNil(t, got.RunID)

	rec = doJSON(t, h, http.MethodGet, "/api/runs/"+got.RunID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	run := decode[history.Run](t, rec)
	assert.Equal(t, "route-7", run.Source)
	assert.Equal(t, got.Addresses, run.Addresses)

	rec = doJSON(t, h, http.MethodGet, "/api/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Runs []history.Summary `json:"runs"`
	}](t, rec)
	require.Len(t, list.Runs, 1)
	assert.Equal(t, 2, list.Runs[0].AddressCount)
}

func TestRunsErrors(t *testing.T) {
	h := newTestServer(t, Dependencies{Store: &memoryStore{}})

	assert.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodGet, "/api/runs/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/api/runs/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/api/runs?limit=abc", nil).Code)
}

func TestRunsDisabledWithoutStore(t *testing.T) {
	h := newTestServer(t, Dependencies{})
	assert.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodGet, "/api/runs", nil).Code)
}

func multipartImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 16, 16))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "manifest.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestOCR(t *testing.T) {
	engine := ocr.EngineFunc(func(ctx context.Context, in ocr.Input) (ocr.Result, error) {
		assert.Equal(t, "manifest.png", in.ID)
		return ocr.Result{Text: manifest}, nil
	})
	h := newTestServer(t, Dependencies{Engine: engine})

	body, ct := multipartImage(t, map[string]string{"explain": "true"})
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[report.Report](t, rec)
	assert.Equal(t, []string{"Storgatan 12, Stockholm", "Lillvägen 12B, Stockholm"}, got.Addresses)
	assert.Len(t, got.Lines, 3)
}

func TestOCREngineFailure(t *testing.T) {
	engine := ocr.EngineFunc(func(ctx context.Context, in ocr.Input) (ocr.Result, error) {
		return ocr.Result{}, errors.New("tesseract crashed")
	})
	h := newTestServer(t, Dependencies{Engine: engine})

	body, ct := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOCRCancelledRequestWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	engine := ocr.EngineFunc(func(_ context.Context, in ocr.Input) (ocr.Result, error) {
		cancel()
		return ocr.Result{Text: manifest}, nil
	})
	h := newTestServer(t, Dependencies{Engine: engine})

	body, ct := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", body).WithContext(ctx)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Body.String())
}

func TestOCRWithoutEngine(t *testing.T) {
	body, ct := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newTestServer(t, Dependencies{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.APIKey = "secret"
	s, err := NewServer(cfg, Dependencies{})
	require.NoError(t, err)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := t.TempDir() + "/web.json"
	require.NoError(t, writeFile(path, `{"server":{"port":9000}}`))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.True(t, cfg.Features.ComponentsEnabled)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
