package app

import (
	"errors"
	"testing"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/pose"
)

func TestSession_Lifecycle(t *testing.T) {
	a := newTestApp(t)

	session, err := a.NewSession("squat")
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if session.Exercise() != "squat" {
		t.Errorf("expected exercise squat, got %q", session.Exercise())
	}

	for _, f := range pose.SquatSequence(2, 30) {
		if err := session.AddFrame(f); err != nil {
			t.Fatalf("AddFrame() error: %v", err)
		}
	}
	if session.FrameCount() != 61 {
		t.Errorf("expected 61 buffered frames, got %d", session.FrameCount())
	}

	report, err := session.Finish(false)
	if err != nil {
		t.Fatalf("Finish() error: %v", err)
	}
	if report.RepCount != 2 {
		t.Errorf("expected 2 reps, got %d", report.RepCount)
	}
}

func TestSession_UnknownExercise(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.NewSession("bench"); !errors.Is(err, analysis.ErrUnknownExercise) {
		t.Errorf("expected ErrUnknownExercise, got %v", err)
	}
}

func TestSession_FinishTwice(t *testing.T) {
	a := newTestApp(t)

	session, err := a.NewSession("squat")
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	for _, f := range pose.SquatSequence(1, 30) {
		session.AddFrame(f)
	}

	if _, err := session.Finish(false); err != nil {
		t.Fatalf("first Finish() error: %v", err)
	}
	if _, err := session.Finish(false); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("expected ErrSessionFinished, got %v", err)
	}
	if err := session.AddFrame(pose.Frame{}); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("expected ErrSessionFinished on AddFrame, got %v", err)
	}
}

func TestSession_FinishEmpty(t *testing.T) {
	a := newTestApp(t)

	session, err := a.NewSession("squat")
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	if _, err := session.Finish(false); !errors.Is(err, analysis.ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence for an empty session, got %v", err)
	}
}

func TestSession_BufferCap(t *testing.T) {
	a := newTestApp(t)

	session, err := a.NewSession("squat")
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	var f pose.Frame
	for i := 0; i < MaxSessionFrames+10; i++ {
		f.TimestampMs = int64(i)
		if err := session.AddFrame(f); err != nil {
			t.Fatalf("AddFrame() error: %v", err)
		}
	}

	if got := session.FrameCount(); got != MaxSessionFrames {
		t.Errorf("expected the buffer capped at %d frames, got %d", MaxSessionFrames, got)
	}

	// The oldest frames were dropped, not the newest.
	session.mu.Lock()
	first := session.frames[0].TimestampMs
	session.mu.Unlock()
	if first != 10 {
		t.Errorf("expected the first buffered frame to be timestamp 10, got %d", first)
	}
}
