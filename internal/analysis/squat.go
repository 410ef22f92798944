package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/formsight/internal/pose"
)

// Squat fault detection targets, in degrees. A rep bottoming out above
// squatDepthTarget at the knee is flagged as shallow; trunk lean beyond
// squatLeanAllowance is flagged as a spinal fault. Deviations are measured
// beyond these allowances before severity classification.
const (
	squatDepthTarget    = 100.0
	squatLeanAllowance  = 45.0
	tempoRatioAllowance = 0.1
)

var squatRequired = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// SquatAnalyzer analyzes squat attempts. The hip midpoint's vertical track
// is the primary displacement signal: a rep is one descent→ascent cycle.
type SquatAnalyzer struct {
	cfg Config
}

// NewSquatAnalyzer creates a squat analyzer with the given configuration.
func NewSquatAnalyzer(cfg Config) *SquatAnalyzer {
	return &SquatAnalyzer{cfg: cfg}
}

// Exercise returns the exercise name.
func (a *SquatAnalyzer) Exercise() string { return "squat" }

func (a *SquatAnalyzer) signal(seq pose.Sequence) []float64 {
	return displacement(seq, pose.Frame.HipMidpoint, a.cfg.MinConfidence)
}

// DetectPhases segments the sequence by hip vertical velocity.
func (a *SquatAnalyzer) DetectPhases(seq pose.Sequence) []MovementPhase {
	return segmentByVelocity(a.signal(seq), a.cfg)
}

// Analyze produces the full squat report.
func (a *SquatAnalyzer) Analyze(seq pose.Sequence) (*Report, error) {
	if err := a.cfg.checkSequence(seq); err != nil {
		return nil, err
	}

	angles := extractAngles(seq, a.cfg.MinConfidence)
	valid := validFrames(seq, squatRequired, a.cfg.MinConfidence)
	signal := a.signal(seq)
	phases := segmentByVelocity(signal, a.cfg)
	reps := countReps(phases, PhaseDescent, PhaseAscent)

	var formErrors []FormError
	formErrors = append(formErrors, a.depthErrors(angles, valid, phases)...)
	formErrors = append(formErrors, a.kneeErrors(angles, valid)...)
	formErrors = append(formErrors, a.leanErrors(angles, valid)...)
	formErrors = append(formErrors, tempoErrors(phases, PhaseDescent, PhaseAscent)...)

	return newReport(a.Exercise(), seq, phases, signal, angles, valid, reps, formErrors), nil
}

// depthErrors flags reps whose lowest knee angle never reached depth.
func (a *SquatAnalyzer) depthErrors(angles []JointAngles, valid []bool, phases []MovementPhase) []FormError {
	var out []FormError

	for _, window := range repWindows(phases, PhaseDescent, PhaseAscent) {
		minKnee := math.Inf(1)
		for i := window[0]; i <= window[1] && i < len(angles); i++ {
			if !valid[i] {
				continue
			}
			for _, knee := range []Angle{angles[i].LeftKnee, angles[i].RightKnee} {
				if knee.Valid && knee.Degrees < minKnee {
					minKnee = knee.Degrees
				}
			}
		}

		if math.IsInf(minKnee, 1) || minKnee <= squatDepthTarget {
			continue
		}

		deviation := minKnee - squatDepthTarget
		out = append(out, newFormError(
			DeviationDepth, deviation, window[0], window[1],
			fmt.Sprintf("Squat bottomed out at a %.0f° knee angle, short of depth.", minKnee),
			"Sit deeper until the hip crease drops to knee level.",
			[]int{pose.LeftKnee, pose.RightKnee, pose.LeftHip, pose.RightHip},
		))
	}

	return out
}

// kneeErrors flags left/right knee angle asymmetry, a proxy for uneven
// loading or a knee collapsing inward.
func (a *SquatAnalyzer) kneeErrors(angles []JointAngles, valid []bool) []FormError {
	maxAsymmetry := 0.0
	worstFrame := -1

	for i, snapshot := range angles {
		if !valid[i] || !snapshot.LeftKnee.Valid || !snapshot.RightKnee.Valid {
			continue
		}
		asym := math.Abs(snapshot.LeftKnee.Degrees - snapshot.RightKnee.Degrees)
		if asym > maxAsymmetry {
			maxAsymmetry = asym
			worstFrame = i
		}
	}

	low := severityThresholds[DeviationKnee][0]
	if worstFrame < 0 || maxAsymmetry <= low {
		return nil
	}

	return []FormError{newFormError(
		DeviationKnee, maxAsymmetry, worstFrame, worstFrame,
		fmt.Sprintf("Knees bent unevenly, up to %.0f° apart.", maxAsymmetry),
		"Push the floor away evenly with both legs.",
		[]int{pose.LeftKnee, pose.RightKnee},
	)}
}

// leanErrors flags excessive forward trunk lean beyond what a squat needs.
func (a *SquatAnalyzer) leanErrors(angles []JointAngles, valid []bool) []FormError {
	maxLean := 0.0
	start, end := -1, -1

	for i, snapshot := range angles {
		if !valid[i] || !snapshot.Spine.Valid {
			continue
		}
		if snapshot.Spine.Degrees > squatLeanAllowance {
			if start < 0 {
				start = i
			}
			end = i
			if snapshot.Spine.Degrees > maxLean {
				maxLean = snapshot.Spine.Degrees
			}
		}
	}

	if start < 0 {
		return nil
	}

	deviation := maxLean - squatLeanAllowance
	return []FormError{newFormError(
		DeviationSpinal, deviation, start, end,
		fmt.Sprintf("Trunk folded forward to %.0f° from upright.", maxLean),
		"Keep the chest up and the bar over mid-foot.",
		[]int{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip},
	)}
}

// tempoErrors compares the average durations of the two travel phases and
// flags a set whose lowering and lifting speeds diverge. Shared by all
// exercises with a two-phase rep cycle.
func tempoErrors(phases []MovementPhase, first, second PhaseType) []FormError {
	var firstDur, secondDur []float64
	firstStart := len(phases)

	for i, p := range phases {
		switch p.Type {
		case first:
			firstDur = append(firstDur, p.Duration)
			if i < firstStart {
				firstStart = i
			}
		case second:
			secondDur = append(secondDur, p.Duration)
		}
	}

	if len(firstDur) == 0 || len(secondDur) == 0 {
		return nil
	}

	ratio := stat.Mean(firstDur, nil) / stat.Mean(secondDur, nil)
	imbalance := math.Abs(ratio - 1)
	if imbalance <= tempoRatioAllowance {
		return nil
	}

	last := phases[len(phases)-1]
	return []FormError{newFormError(
		DeviationTempo, imbalance, phases[firstStart].StartIndex, last.EndIndex,
		fmt.Sprintf("The %s phase averaged %.1fx the duration of the %s phase.", first, ratio, second),
		"Use the same count down and up on every rep.",
		nil,
	)}
}
