package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/routescan/internal/extract"
	"github.com/routescan/internal/history"
	"github.com/routescan/internal/ocr"
	"github.com/routescan/internal/report"
)

// ExtractHandler turns manifest text or photos into address lists.
type ExtractHandler struct {
	Extractor  *extract.Extractor
	Engine     ocr.Engine
	OCROptions []ocr.InputOption
	Components report.ComponentFunc
	Store      RunStore
	Config     *Config
}

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	Text       string `json:"text"`
	Source     string `json:"source"`
	Explain    bool   `json:"explain"`
	Components bool   `json:"components"`
	Save       bool   `json:"save"`
}

// Extract runs the pipeline over raw text.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload())

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}

	h.respond(w, r, req.Source, req.Text, req.Explain, req.Components, req.Save)
}

// OCR recognizes an uploaded manifest photo and runs the pipeline over the
// text. The request context bounds recognition; a dropped client discards
// the result.
func (h *ExtractHandler) OCR(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil {
		writeError(w, http.StatusServiceUnavailable, "OCR engine not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload())
	if err := r.ParseMultipartForm(h.maxUpload()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image")
		return
	}

	opts := append([]ocr.InputOption{ocr.WithID(header.Filename)}, h.OCROptions...)
	text, err := ocr.Transcribe(r.Context(), h.Engine, data, opts...)
	if err != nil {
		if r.Context().Err() != nil {
			log.Printf("ocr %s: request cancelled", header.Filename)
			return
		}
		if errors.Is(err, ocr.ErrEmptyImage) {
			writeError(w, http.StatusBadRequest, "Empty image")
			return
		}
		log.Printf("ocr %s: %v", header.Filename, err)
		writeError(w, http.StatusUnprocessableEntity, "Could not recognize image")
		return
	}

	h.respond(w, r, header.Filename, text,
		formBool(r, "explain"), formBool(r, "components"), formBool(r, "save"))
}

func (h *ExtractHandler) respond(w http.ResponseWriter, r *http.Request, source, text string, explain, components, save bool) {
	rep := report.Build(h.Extractor, text, report.Options{
		Explain:    explain,
		Components: components && h.componentsEnabled(),
		Parse:      h.Components,
	})

	if save && h.Store != nil {
		run := &history.Run{Source: source, LineCount: rep.LineCount, Addresses: rep.Addresses}
		if err := h.Store.Save(r.Context(), run); err != nil {
			log.Printf("save run: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save run")
			return
		}
		rep.RunID = &run.ID
	}

	writeJSON(w, http.StatusOK, rep)
}

func (h *ExtractHandler) maxUpload() int64 {
	if h.Config != nil && h.Config.MaxUploadBytes > 0 {
		return h.Config.MaxUploadBytes
	}
	return 16 << 20
}

func (h *ExtractHandler) componentsEnabled() bool {
	return h.Config == nil || h.Config.Features.ComponentsEnabled
}

func formBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.FormValue(key))
	return b
}
