// Package api provides HTTP API handlers for the formsight analysis service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/formsight/internal/store"
)

// ReportsHandler handles HTTP requests for stored analysis reports.
type ReportsHandler struct {
	store *store.Store
}

// NewReportsHandler creates a new ReportsHandler with the given store.
func NewReportsHandler(s *store.Store) *ReportsHandler {
	return &ReportsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/reports or /api/reports/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/reports")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/reports
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	// Item endpoint: /api/reports/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type listReportsResponse struct {
	Reports []store.ReportSummary `json:"reports"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/reports and returns summaries of all reports.
func (h *ReportsHandler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.Reports().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	if summaries == nil {
		summaries = []store.ReportSummary{}
	}

	writeJSON(w, http.StatusOK, listReportsResponse{Reports: summaries})
}

// get handles GET /api/reports/{id} and returns a full report.
func (h *ReportsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	report, err := h.store.Reports().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// delete handles DELETE /api/reports/{id} and removes a report.
func (h *ReportsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Reports().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
