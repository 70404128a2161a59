package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/routescan/internal/history"
)

// RunsHandler serves saved extraction runs.
type RunsHandler struct {
	Store RunStore
}

// ListRuns returns the newest runs, ?limit=n (default 20, max 200).
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"), 20)
	if limit <= 0 || limit > 200 {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
		return
	}

	runs, err := h.Store.List(r.Context(), limit)
	if err != nil {
		log.Printf("list runs: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// GetRun returns one run with its addresses.
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, history.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		log.Printf("get run %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// parseIntParam parses a query parameter; empty yields defaultVal and
// anything non-numeric yields -1.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return -1
}
