package analysis

import (
	"fmt"
	"math"

	"github.com/ayusman/formsight/internal/pose"
)

// Push-up fault detection targets, in degrees. The body line is the angle at
// the hip between the shoulder and ankle midpoints; 180 is a rigid plank.
const (
	pushupDepthTarget       = 95.0
	pushupBodyLineAllowance = 8.0
)

var pushupRequired = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
	pose.LeftHip, pose.RightHip,
	pose.LeftAnkle, pose.RightAnkle,
}

// PushupAnalyzer analyzes push-up attempts. The shoulder midpoint's vertical
// track is the primary displacement signal: a rep is one descent→ascent
// cycle toward and away from the floor.
type PushupAnalyzer struct {
	cfg Config
}

// NewPushupAnalyzer creates a push-up analyzer with the given configuration.
func NewPushupAnalyzer(cfg Config) *PushupAnalyzer {
	return &PushupAnalyzer{cfg: cfg}
}

// Exercise returns the exercise name.
func (a *PushupAnalyzer) Exercise() string { return "pushup" }

func (a *PushupAnalyzer) signal(seq pose.Sequence) []float64 {
	return displacement(seq, pose.Frame.ShoulderMidpoint, a.cfg.MinConfidence)
}

// DetectPhases segments the sequence by shoulder vertical velocity.
func (a *PushupAnalyzer) DetectPhases(seq pose.Sequence) []MovementPhase {
	return segmentByVelocity(a.signal(seq), a.cfg)
}

// Analyze produces the full push-up report.
func (a *PushupAnalyzer) Analyze(seq pose.Sequence) (*Report, error) {
	if err := a.cfg.checkSequence(seq); err != nil {
		return nil, err
	}

	angles := extractAngles(seq, a.cfg.MinConfidence)
	valid := validFrames(seq, pushupRequired, a.cfg.MinConfidence)
	signal := a.signal(seq)
	phases := segmentByVelocity(signal, a.cfg)
	reps := countReps(phases, PhaseDescent, PhaseAscent)

	var formErrors []FormError
	formErrors = append(formErrors, a.rangeErrors(angles, valid, phases)...)
	formErrors = append(formErrors, a.bodyLineErrors(seq, valid)...)
	formErrors = append(formErrors, tempoErrors(phases, PhaseDescent, PhaseAscent)...)

	return newReport(a.Exercise(), seq, phases, signal, angles, valid, reps, formErrors), nil
}

// rangeErrors flags reps whose elbows never bent far enough.
func (a *PushupAnalyzer) rangeErrors(angles []JointAngles, valid []bool, phases []MovementPhase) []FormError {
	var out []FormError

	for _, window := range repWindows(phases, PhaseDescent, PhaseAscent) {
		minElbow := math.Inf(1)
		for i := window[0]; i <= window[1] && i < len(angles); i++ {
			if !valid[i] {
				continue
			}
			for _, elbow := range []Angle{angles[i].LeftElbow, angles[i].RightElbow} {
				if elbow.Valid && elbow.Degrees < minElbow {
					minElbow = elbow.Degrees
				}
			}
		}

		if math.IsInf(minElbow, 1) || minElbow <= pushupDepthTarget {
			continue
		}

		deviation := minElbow - pushupDepthTarget
		out = append(out, newFormError(
			DeviationDepth, deviation, window[0], window[1],
			fmt.Sprintf("Rep stopped at a %.0f° elbow angle, short of the floor.", minElbow),
			"Lower until the chest nearly touches the floor.",
			[]int{pose.LeftElbow, pose.RightElbow, pose.LeftShoulder, pose.RightShoulder},
		))
	}

	return out
}

// bodyLineErrors flags hips that sag below or pike above the shoulder-ankle
// line.
func (a *PushupAnalyzer) bodyLineErrors(seq pose.Sequence, valid []bool) []FormError {
	maxDeviation := 0.0
	start, end := -1, -1

	for i, f := range seq {
		if !valid[i] {
			continue
		}

		shoulderMid := f.ShoulderMidpoint()
		hipMid := f.HipMidpoint()
		ankleMid := pose.Midpoint(f.Landmarks[pose.LeftAnkle], f.Landmarks[pose.RightAnkle])

		line, ok := AngleAt(shoulderMid, hipMid, ankleMid, a.cfg.MinConfidence)
		if !ok {
			continue
		}

		deviation := 180 - line
		if deviation <= pushupBodyLineAllowance {
			continue
		}
		if start < 0 {
			start = i
		}
		end = i
		if deviation > maxDeviation {
			maxDeviation = deviation
		}
	}

	if start < 0 {
		return nil
	}

	return []FormError{newFormError(
		DeviationSpinal, maxDeviation-pushupBodyLineAllowance, start, end,
		fmt.Sprintf("Hips broke the body line by up to %.0f°.", maxDeviation),
		"Squeeze the glutes and brace the core to hold a straight line.",
		[]int{pose.LeftHip, pose.RightHip, pose.LeftShoulder, pose.RightShoulder},
	)}
}
