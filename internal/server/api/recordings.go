package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/pose"
	"github.com/ayusman/formsight/internal/store"
)

// RecordingsHandler handles HTTP requests for raw pose recordings.
type RecordingsHandler struct {
	store *store.Store
	app   *app.App
}

// NewRecordingsHandler creates a new RecordingsHandler with the given store
// and app.
func NewRecordingsHandler(s *store.Store, a *app.App) *RecordingsHandler {
	return &RecordingsHandler{store: s, app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *RecordingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/recordings or /api/recordings/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/recordings
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/recordings/{id}
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

type createRecordingRequest struct {
	Exercise string        `json:"exercise"`
	Frames   pose.Sequence `json:"frames"`
}

type listRecordingsResponse struct {
	Recordings []*store.Recording `json:"recordings"`
}

// list handles GET /api/recordings and returns all recordings without
// their frame data.
func (h *RecordingsHandler) list(w http.ResponseWriter, r *http.Request) {
	recordings, err := h.store.Recordings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	if recordings == nil {
		recordings = []*store.Recording{}
	}

	writeJSON(w, http.StatusOK, listRecordingsResponse{Recordings: recordings})
}

// create handles POST /api/recordings and stores a new recording.
func (h *RecordingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Exercise == "" {
		writeError(w, http.StatusBadRequest, "Exercise is required")
		return
	}
	if len(req.Frames) == 0 {
		writeError(w, http.StatusBadRequest, "Frames are required")
		return
	}

	rec, err := h.app.SaveRecording(req.Exercise, req.Frames)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create recording")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// get handles GET /api/recordings/{id} and returns a recording with its
// frame data.
func (h *RecordingsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.store.Recordings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get recording")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// delete handles DELETE /api/recordings/{id} and removes a recording.
func (h *RecordingsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Recordings().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete recording")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Analyze handles POST /api/recordings/{id}/analyze and runs analysis over
// a stored recording. With ?save=true the resulting report is persisted.
func (h *RecordingsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/recordings/")
	id := strings.TrimSuffix(path, "/analyze")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Recording ID is required")
		return
	}

	save := r.URL.Query().Get("save") == "true"

	report, err := h.app.AnalyzeRecording(id, save)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Recording not found")
		case errors.Is(err, analysis.ErrUnknownExercise),
			errors.Is(err, analysis.ErrEmptySequence),
			errors.Is(err, analysis.ErrTooFewFrames):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to analyze recording")
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}
