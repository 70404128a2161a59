package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/routescan/internal/history"
)

// Config carries the feature switches the handlers need.
type Config struct {
	Features struct {
		ComponentsEnabled bool `json:"components_enabled"`
		HistoryEnabled    bool `json:"history_enabled"`
	} `json:"features"`
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

// RunStore is the part of history.Store the handlers use.
type RunStore interface {
	Save(ctx context.Context, run *history.Run) error
	Get(ctx context.Context, id uuid.UUID) (*history.Run, error)
	List(ctx context.Context, limit int) ([]history.Summary, error)
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIHandler handles general API endpoints
type APIHandler struct {
	Version string
}

// Health reports that the service is up.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.Version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
