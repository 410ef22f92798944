package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/pose"
)

// AnalyzeHandler handles one-shot analysis requests where the client sends
// a full pose sequence in the request body.
type AnalyzeHandler struct {
	app *app.App
}

// NewAnalyzeHandler creates a new AnalyzeHandler backed by the given app.
func NewAnalyzeHandler(a *app.App) *AnalyzeHandler {
	return &AnalyzeHandler{app: a}
}

type analyzeRequest struct {
	Exercise string        `json:"exercise"`
	Frames   pose.Sequence `json:"frames"`
}

// ServeHTTP handles POST /api/analyze. With ?save=true the resulting report
// is persisted.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Exercise == "" {
		writeError(w, http.StatusBadRequest, "Exercise is required")
		return
	}

	report, err := h.app.AnalyzeSequence(req.Exercise, req.Frames)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrUnknownExercise):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, analysis.ErrEmptySequence),
			errors.Is(err, analysis.ErrTooFewFrames):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to analyze sequence")
		}
		return
	}

	if r.URL.Query().Get("save") == "true" {
		if err := h.app.SaveReport(report); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save report")
			return
		}
	}

	writeJSON(w, http.StatusOK, report)
}
