package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/formsight/internal/pose"
)

func sampleRecording(t *testing.T) *Recording {
	t.Helper()

	seq := pose.SquatSequence(1, 30)
	data, err := json.Marshal(seq)
	if err != nil {
		t.Fatalf("failed to encode sequence: %v", err)
	}

	return &Recording{
		ID:         uuid.New().String(),
		Exercise:   "squat",
		FrameCount: len(seq),
		Data:       data,
	}
}

func TestRecordingRepository_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	original := sampleRecording(t)

	if err := s.Recordings().Create(original); err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}
	if original.CreatedAt.IsZero() {
		t.Error("expected Create to stamp CreatedAt")
	}

	got, err := s.Recordings().GetByID(original.ID)
	if err != nil {
		t.Fatalf("failed to get recording: %v", err)
	}

	if got.Exercise != "squat" {
		t.Errorf("expected exercise squat, got %q", got.Exercise)
	}
	if got.FrameCount != original.FrameCount {
		t.Errorf("expected frame count %d, got %d", original.FrameCount, got.FrameCount)
	}

	// The stored frames decode back into the same sequence shape.
	seq, err := got.Sequence()
	if err != nil {
		t.Fatalf("failed to decode sequence: %v", err)
	}
	if len(seq) != original.FrameCount {
		t.Errorf("expected %d frames, got %d", original.FrameCount, len(seq))
	}
	if seq[0].Landmarks[pose.LeftHip].InFrameLikelihood == 0 {
		t.Error("expected landmark data to survive the round trip")
	}
}

func TestRecordingRepository_ListOmitsData(t *testing.T) {
	s := newTestStore(t)

	if err := s.Recordings().Create(sampleRecording(t)); err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}

	recordings, err := s.Recordings().List()
	if err != nil {
		t.Fatalf("failed to list recordings: %v", err)
	}

	if len(recordings) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recordings))
	}
	if recordings[0].Data != nil {
		t.Error("expected the listing to omit frame data")
	}
	if recordings[0].FrameCount != 31 {
		t.Errorf("expected frame count 31, got %d", recordings[0].FrameCount)
	}
}

func TestRecordingRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Recordings().GetByID("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordingRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecording(t)

	if err := s.Recordings().Create(rec); err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}
	if err := s.Recordings().Delete(rec.ID); err != nil {
		t.Fatalf("failed to delete recording: %v", err)
	}
	if err := s.Recordings().Delete(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
