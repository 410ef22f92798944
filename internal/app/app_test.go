package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/pose"
	"github.com/ayusman/formsight/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return New(Config{Store: st})
}

func TestApp_AnalyzeSequence(t *testing.T) {
	a := newTestApp(t)

	report, err := a.AnalyzeSequence("squat", pose.SquatSequence(3, 30))
	if err != nil {
		t.Fatalf("AnalyzeSequence() error: %v", err)
	}

	if report.RepCount != 3 {
		t.Errorf("expected 3 reps, got %d", report.RepCount)
	}
}

func TestApp_AnalyzeSequence_UnknownExercise(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.AnalyzeSequence("bench", pose.SquatSequence(1, 30)); !errors.Is(err, analysis.ErrUnknownExercise) {
		t.Errorf("expected ErrUnknownExercise, got %v", err)
	}
}

func TestApp_DefaultsAnalysisConfig(t *testing.T) {
	a := New(Config{})

	if a.AnalysisConfig() != analysis.DefaultConfig() {
		t.Errorf("expected the default analysis config, got %+v", a.AnalysisConfig())
	}
}

func TestApp_SaveReportWithoutStore(t *testing.T) {
	a := New(Config{})

	report, err := a.AnalyzeSequence("squat", pose.SquatSequence(1, 30))
	if err != nil {
		t.Fatalf("AnalyzeSequence() error: %v", err)
	}

	if err := a.SaveReport(report); !errors.Is(err, ErrNoStore) {
		t.Errorf("expected ErrNoStore, got %v", err)
	}
}

func TestApp_SaveAndAnalyzeRecording(t *testing.T) {
	a := newTestApp(t)

	rec, err := a.SaveRecording("squat", pose.SquatSequence(2, 30))
	if err != nil {
		t.Fatalf("SaveRecording() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected a recording ID")
	}
	if rec.FrameCount != 61 {
		t.Errorf("expected frame count 61, got %d", rec.FrameCount)
	}

	report, err := a.AnalyzeRecording(rec.ID, true)
	if err != nil {
		t.Fatalf("AnalyzeRecording() error: %v", err)
	}
	if report.RepCount != 2 {
		t.Errorf("expected 2 reps, got %d", report.RepCount)
	}

	// With save set, the report was persisted.
	stored, err := a.Store().Reports().GetByID(report.ID)
	if err != nil {
		t.Fatalf("expected the report to be stored: %v", err)
	}
	if stored.Exercise != "squat" {
		t.Errorf("expected a stored squat report, got %q", stored.Exercise)
	}
}

func TestApp_AnalyzeRecording_Missing(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.AnalyzeRecording("no-such-id", false); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
