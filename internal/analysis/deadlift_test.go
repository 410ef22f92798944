package analysis

import (
	"testing"

	"github.com/ayusman/formsight/internal/pose"
)

func TestDeadliftAnalyzer_CountsReps(t *testing.T) {
	analyzer := NewDeadliftAnalyzer(DefaultConfig())

	report, err := analyzer.Analyze(pose.DeadliftSequence(3, 30))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if report.RepCount != 3 {
		t.Errorf("expected 3 reps, got %d", report.RepCount)
	}
	if report.Exercise != "deadlift" {
		t.Errorf("expected exercise deadlift, got %q", report.Exercise)
	}
}

func TestDeadliftAnalyzer_FirstPhaseIsAscent(t *testing.T) {
	analyzer := NewDeadliftAnalyzer(DefaultConfig())

	phases := analyzer.DetectPhases(pose.DeadliftSequence(2, 30))
	if len(phases) == 0 {
		t.Fatal("expected phases")
	}

	// A deadlift starts at the bottom: the bar travels up first.
	if phases[0].Type != PhaseAscent {
		t.Errorf("expected the first phase to be an ascent, got %s", phases[0].Type)
	}
}

func TestDeadliftAnalyzer_CleanSetHasNoErrors(t *testing.T) {
	analyzer := NewDeadliftAnalyzer(DefaultConfig())

	report, err := analyzer.Analyze(pose.DeadliftSequence(3, 30))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	for _, e := range report.Errors {
		t.Errorf("expected no errors for a clean set, got %+v", e)
	}
}

func TestDeadliftAnalyzer_SoftLockoutFlagged(t *testing.T) {
	analyzer := NewDeadliftAnalyzer(DefaultConfig())

	report, err := analyzer.Analyze(pose.SoftLockoutDeadliftSequence(3, 30))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	var kinds []DeviationKind
	for _, e := range report.Errors {
		kinds = append(kinds, e.Type)
	}

	hasDepth := false
	for _, k := range kinds {
		if k == DeviationDepth {
			hasDepth = true
		}
	}
	if !hasDepth {
		t.Errorf("expected a lockout (depth) error for soft lockouts, got %v", kinds)
	}
}
