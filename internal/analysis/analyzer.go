package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/formsight/internal/pose"
)

// Structural input failures surfaced by Analyze. Everything below this level
// (low-confidence landmarks, degenerate geometry, too little data to score)
// degrades to neutral values instead of failing the run.
var (
	ErrEmptySequence   = errors.New("empty pose sequence")
	ErrTooFewFrames    = errors.New("not enough frames to analyze")
	ErrUnknownExercise = errors.New("unknown exercise")
)

// Config holds the tunable parameters of an analyzer. A Config is set at
// construction and read-only afterwards, so analyzers are safe to share
// across concurrent analyses.
type Config struct {
	// MinConfidence is the landmark confidence gate below which a point is
	// treated as unavailable.
	MinConfidence float64
	// MinFrames is the minimum sequence length Analyze accepts.
	MinFrames int
	// TransitionThreshold is the velocity magnitude, in normalized image
	// coordinates per frame, required for a phase transition.
	TransitionThreshold float64
	// SmoothWindow is the moving-average window applied to displacement
	// signals before differentiation.
	SmoothWindow int
}

// DefaultConfig returns the configuration calibrated for ~30 FPS capture
// with normalized image coordinates.
func DefaultConfig() Config {
	return Config{
		MinConfidence:       0.5,
		MinFrames:           10,
		TransitionThreshold: 0.002,
		SmoothWindow:        DefaultSmoothWindow,
	}
}

// checkSequence validates the input structure. This is the only failure an
// analyzer surfaces; noisy or partially occluded data is analyzed anyway and
// reflected in ValidFrameRatio.
func (cfg Config) checkSequence(seq pose.Sequence) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if len(seq) < cfg.MinFrames {
		return fmt.Errorf("%w: got %d frames, need at least %d", ErrTooFewFrames, len(seq), cfg.MinFrames)
	}
	return nil
}

// Report is the result of analyzing one exercise attempt.
type Report struct {
	ID         string `json:"id"`
	Exercise   string `json:"exercise"`
	RepCount   int    `json:"rep_count"`
	FrameCount int    `json:"frame_count"`
	// ValidFrameRatio is the share of frames that passed landmark
	// validation; a low value means a poor capture, not poor form.
	ValidFrameRatio float64           `json:"valid_frame_ratio"`
	Consistency     float64           `json:"consistency"`
	Smoothness      float64           `json:"smoothness"`
	RangeOfMotion   map[Joint]float64 `json:"range_of_motion"`
	Phases          []MovementPhase   `json:"phases"`
	Errors          []FormError       `json:"errors"`
	Suggestions     []FormSuggestion  `json:"suggestions"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Analyzer analyzes pose sequences for one exercise type. Implementations
// hold only immutable configuration, so a single instance may analyze many
// sequences concurrently.
type Analyzer interface {
	// Exercise returns the exercise name this analyzer understands.
	Exercise() string
	// DetectPhases segments a sequence into labeled movement phases.
	DetectPhases(seq pose.Sequence) []MovementPhase
	// Analyze produces the full movement report for one attempt. It fails
	// only on structurally invalid input (empty or too-short sequences).
	Analyze(seq pose.Sequence) (*Report, error)
}

// New returns the analyzer for the named exercise.
func New(exercise string, cfg Config) (Analyzer, error) {
	switch exercise {
	case "squat":
		return NewSquatAnalyzer(cfg), nil
	case "pushup":
		return NewPushupAnalyzer(cfg), nil
	case "deadlift":
		return NewDeadliftAnalyzer(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, exercise)
}

// Exercises lists the supported exercise names.
func Exercises() []string {
	return []string{"squat", "pushup", "deadlift"}
}

// Shared per-sequence derivations used by the concrete analyzers.

// extractAngles computes the joint angle snapshot for every frame.
func extractAngles(seq pose.Sequence, minConfidence float64) []JointAngles {
	angles := make([]JointAngles, len(seq))
	for i, f := range seq {
		angles[i] = ExtractJointAngles(f, minConfidence)
	}
	return angles
}

// validFrames marks each frame that passes landmark validation for the
// exercise's required indices.
func validFrames(seq pose.Sequence, required []int, minConfidence float64) []bool {
	valid := make([]bool, len(seq))
	for i, f := range seq {
		valid[i] = pose.Validate(f, required, minConfidence)
	}
	return valid
}

func validRatio(valid []bool) float64 {
	if len(valid) == 0 {
		return 0
	}
	count := 0
	for _, v := range valid {
		if v {
			count++
		}
	}
	return float64(count) / float64(len(valid))
}

// rangeOfMotion computes max-min per joint over validated frames, skipping
// unavailable measurements. Joints with no valid measurement are omitted.
func rangeOfMotion(angles []JointAngles, valid []bool) map[Joint]float64 {
	type bounds struct {
		min, max float64
		seen     bool
	}
	perJoint := make(map[Joint]*bounds)

	for i, snapshot := range angles {
		if !valid[i] {
			continue
		}
		for joint, angle := range snapshot.Map() {
			if !angle.Valid {
				continue
			}
			b := perJoint[joint]
			if b == nil {
				b = &bounds{min: angle.Degrees, max: angle.Degrees, seen: true}
				perJoint[joint] = b
				continue
			}
			if angle.Degrees < b.min {
				b.min = angle.Degrees
			}
			if angle.Degrees > b.max {
				b.max = angle.Degrees
			}
		}
	}

	rom := make(map[Joint]float64, len(perJoint))
	for joint, b := range perJoint {
		rom[joint] = b.max - b.min
	}
	return rom
}

// displacement tracks the vertical position of a reference landmark across
// the sequence. Frames where the reference falls below the confidence gate
// carry the previous position forward, so a brief occlusion does not spike
// the velocity signal.
func displacement(seq pose.Sequence, reference func(pose.Frame) pose.Landmark, minConfidence float64) []float64 {
	out := make([]float64, len(seq))
	var last float64
	seeded := false

	for i, f := range seq {
		lm := reference(f)
		if lm.InFrameLikelihood >= minConfidence {
			last = lm.Y
			seeded = true
		} else if !seeded {
			last = lm.Y
		}
		out[i] = last
	}

	return out
}

// newReport assembles the fields every analyzer reports the same way.
func newReport(exercise string, seq pose.Sequence, phases []MovementPhase, signal []float64, angles []JointAngles, valid []bool, reps int, formErrors []FormError) *Report {
	consistency := ConsistencyScore(phases)
	smoothness := SmoothnessScore(signal)

	return &Report{
		ID:              uuid.New().String(),
		Exercise:        exercise,
		RepCount:        reps,
		FrameCount:      len(seq),
		ValidFrameRatio: validRatio(valid),
		Consistency:     consistency,
		Smoothness:      smoothness,
		RangeOfMotion:   rangeOfMotion(angles, valid),
		Phases:          phases,
		Errors:          formErrors,
		Suggestions:     buildSuggestions(formErrors, consistency, smoothness),
		CreatedAt:       time.Now(),
	}
}
