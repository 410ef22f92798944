package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/pose"
)

// MaxSessionFrames caps the number of frames a live session buffers. At
// roughly 30 frames per second this is about a minute of movement. Older
// frames are discarded once the cap is reached.
const MaxSessionFrames = 1800

// ErrSessionFinished is returned when frames are added to a session that
// has already been finished.
var ErrSessionFinished = errors.New("session already finished")

// Session accumulates pose frames from a live capture and analyzes them
// when the capture ends.
type Session struct {
	app      *App
	exercise string

	mu       sync.Mutex
	frames   pose.Sequence
	finished bool
}

// NewSession starts a live capture session for the named exercise. The
// exercise must be one of the supported analyzers.
func (a *App) NewSession(exercise string) (*Session, error) {
	if _, err := analysis.New(exercise, a.config.Analysis); err != nil {
		return nil, err
	}

	return &Session{
		app:      a,
		exercise: exercise,
		frames:   make(pose.Sequence, 0, 256),
	}, nil
}

// Exercise returns the exercise this session analyzes.
func (s *Session) Exercise() string {
	return s.exercise
}

// AddFrame appends a frame to the session buffer. When the buffer is full
// the oldest frame is dropped.
func (s *Session) AddFrame(frame pose.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrSessionFinished
	}

	if len(s.frames) >= MaxSessionFrames {
		copy(s.frames, s.frames[1:])
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, frame)

	return nil
}

// FrameCount returns the number of buffered frames.
func (s *Session) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Finish ends the session and analyzes the buffered frames. With save set,
// the report is also persisted. A session can be finished only once.
func (s *Session) Finish(save bool) (*analysis.Report, error) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return nil, ErrSessionFinished
	}
	s.finished = true
	frames := s.frames
	s.frames = nil
	s.mu.Unlock()

	report, err := s.app.AnalyzeSequence(s.exercise, frames)
	if err != nil {
		return nil, err
	}

	if save {
		if err := s.app.SaveReport(report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}

	return report, nil
}
