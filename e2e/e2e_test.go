package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/pose"
	"github.com/ayusman/formsight/internal/server"
	"github.com/ayusman/formsight/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{Store: s})

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var recordingID string
	t.Run("CreateRecording", func(t *testing.T) {
		body, err := json.Marshal(map[string]interface{}{
			"exercise": "squat",
			"frames":   pose.SquatSequence(3, 30),
		})
		if err != nil {
			t.Fatalf("marshal error = %v", err)
		}

		resp, err := client.Post(ts.URL+"/api/recordings", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("create recording error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var rec store.Recording
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			t.Fatalf("decode recording error = %v", err)
		}
		recordingID = rec.ID
	})

	var reportID string
	t.Run("AnalyzeRecording", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/recordings/"+recordingID+"/analyze?save=true", "application/json", nil)
		if err != nil {
			t.Fatalf("analyze error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var report analysis.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("decode report error = %v", err)
		}

		if report.RepCount != 3 {
			t.Errorf("RepCount = %d, want 3", report.RepCount)
		}
		if report.Exercise != "squat" {
			t.Errorf("Exercise = %q, want squat", report.Exercise)
		}
		reportID = report.ID
	})

	t.Run("ListReports", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/reports")
		if err != nil {
			t.Fatalf("list reports error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Reports []store.ReportSummary `json:"reports"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode list error = %v", err)
		}

		if len(list.Reports) != 1 {
			t.Fatalf("len(Reports) = %d, want 1", len(list.Reports))
		}
		if list.Reports[0].ID != reportID {
			t.Errorf("Reports[0].ID = %q, want %q", list.Reports[0].ID, reportID)
		}
	})

	t.Run("GetReport", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/reports/" + reportID)
		if err != nil {
			t.Fatalf("get report error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var report analysis.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("decode report error = %v", err)
		}
		if len(report.RangeOfMotion) == 0 {
			t.Error("expected a populated range of motion map")
		}
	})

	t.Run("DeleteReport", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/reports/"+reportID, nil)
		if err != nil {
			t.Fatalf("build request error = %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete report error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})
}
