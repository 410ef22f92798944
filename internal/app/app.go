// Package app wires the analysis pipeline to storage and live capture
// sessions.
package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/pose"
	"github.com/ayusman/formsight/internal/store"
)

// ErrNoStore is returned by operations that need persistence when the app
// was built without a store.
var ErrNoStore = errors.New("no store configured")

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Analysis analysis.Config
	Logger   *logrus.Logger
}

// App orchestrates analysis runs: it resolves the analyzer for an exercise,
// runs it, and persists the results.
type App struct {
	config Config
	log    *logrus.Logger
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	log := config.Logger
	if log == nil {
		log = logrus.New()
	}

	if config.Analysis == (analysis.Config{}) {
		config.Analysis = analysis.DefaultConfig()
	}

	return &App{config: config, log: log}
}

// AnalysisConfig returns the analyzer configuration in use.
func (a *App) AnalysisConfig() analysis.Config {
	return a.config.Analysis
}

// Store returns the configured store, or nil.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// AnalyzeSequence runs the analyzer for the named exercise over the sequence.
func (a *App) AnalyzeSequence(exercise string, seq pose.Sequence) (*analysis.Report, error) {
	analyzer, err := analysis.New(exercise, a.config.Analysis)
	if err != nil {
		return nil, err
	}

	report, err := analyzer.Analyze(seq)
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"exercise":    exercise,
		"frames":      report.FrameCount,
		"reps":        report.RepCount,
		"errors":      len(report.Errors),
		"valid_ratio": report.ValidFrameRatio,
	}).Info("analysis complete")

	return report, nil
}

// SaveReport persists a report.
func (a *App) SaveReport(report *analysis.Report) error {
	if a.config.Store == nil {
		return ErrNoStore
	}
	return a.config.Store.Reports().Create(report)
}

// SaveRecording persists a raw sequence for later analysis and returns the
// stored recording.
func (a *App) SaveRecording(exercise string, seq pose.Sequence) (*store.Recording, error) {
	if a.config.Store == nil {
		return nil, ErrNoStore
	}

	data, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sequence: %w", err)
	}

	rec := &store.Recording{
		ID:         uuid.New().String(),
		Exercise:   exercise,
		FrameCount: len(seq),
		Data:       data,
	}

	if err := a.config.Store.Recordings().Create(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// AnalyzeRecording loads a stored recording and analyzes it. With save set,
// the resulting report is persisted as well.
func (a *App) AnalyzeRecording(id string, save bool) (*analysis.Report, error) {
	if a.config.Store == nil {
		return nil, ErrNoStore
	}

	rec, err := a.config.Store.Recordings().GetByID(id)
	if err != nil {
		return nil, err
	}

	seq, err := rec.Sequence()
	if err != nil {
		return nil, err
	}

	report, err := a.AnalyzeSequence(rec.Exercise, seq)
	if err != nil {
		return nil, err
	}

	if save {
		if err := a.SaveReport(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}
