package analysis

import (
	"fmt"
	"math"

	"github.com/ayusman/formsight/internal/pose"
)

// Deadlift fault detection targets, in degrees. A rep is locked out when
// the hip angle opens to deadliftLockoutTarget; the spine should be close to
// upright at that point.
const (
	deadliftLockoutTarget      = 160.0
	deadliftTopLeanAllowance   = 15.0
	deadliftLockoutGraceFactor = 0.9
)

var deadliftRequired = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// DeadliftAnalyzer analyzes deadlift attempts. The shoulder midpoint's
// vertical track is the primary displacement signal; unlike a squat, a rep
// starts at the bottom, so the cycle is ascent→descent.
type DeadliftAnalyzer struct {
	cfg Config
}

// NewDeadliftAnalyzer creates a deadlift analyzer with the given configuration.
func NewDeadliftAnalyzer(cfg Config) *DeadliftAnalyzer {
	return &DeadliftAnalyzer{cfg: cfg}
}

// Exercise returns the exercise name.
func (a *DeadliftAnalyzer) Exercise() string { return "deadlift" }

func (a *DeadliftAnalyzer) signal(seq pose.Sequence) []float64 {
	return displacement(seq, pose.Frame.ShoulderMidpoint, a.cfg.MinConfidence)
}

// DetectPhases segments the sequence by shoulder vertical velocity.
func (a *DeadliftAnalyzer) DetectPhases(seq pose.Sequence) []MovementPhase {
	return segmentByVelocity(a.signal(seq), a.cfg)
}

// Analyze produces the full deadlift report.
func (a *DeadliftAnalyzer) Analyze(seq pose.Sequence) (*Report, error) {
	if err := a.cfg.checkSequence(seq); err != nil {
		return nil, err
	}

	angles := extractAngles(seq, a.cfg.MinConfidence)
	valid := validFrames(seq, deadliftRequired, a.cfg.MinConfidence)
	signal := a.signal(seq)
	phases := segmentByVelocity(signal, a.cfg)
	reps := countReps(phases, PhaseAscent, PhaseDescent)

	var formErrors []FormError
	formErrors = append(formErrors, a.lockoutErrors(angles, valid, phases)...)
	formErrors = append(formErrors, a.topLeanErrors(angles, valid)...)
	formErrors = append(formErrors, tempoErrors(phases, PhaseAscent, PhaseDescent)...)

	return newReport(a.Exercise(), seq, phases, signal, angles, valid, reps, formErrors), nil
}

// lockoutErrors flags reps whose hips never opened to a full lockout.
func (a *DeadliftAnalyzer) lockoutErrors(angles []JointAngles, valid []bool, phases []MovementPhase) []FormError {
	var out []FormError

	for _, window := range repWindows(phases, PhaseAscent, PhaseDescent) {
		maxHip := math.Inf(-1)
		for i := window[0]; i <= window[1] && i < len(angles); i++ {
			if !valid[i] {
				continue
			}
			for _, hip := range []Angle{angles[i].LeftHip, angles[i].RightHip} {
				if hip.Valid && hip.Degrees > maxHip {
					maxHip = hip.Degrees
				}
			}
		}

		if math.IsInf(maxHip, -1) || maxHip >= deadliftLockoutTarget {
			continue
		}

		deviation := deadliftLockoutTarget - maxHip
		out = append(out, newFormError(
			DeviationDepth, deviation, window[0], window[1],
			fmt.Sprintf("Hips only opened to %.0f° at the top of the rep.", maxHip),
			"Stand all the way up and squeeze the glutes at the top.",
			[]int{pose.LeftHip, pose.RightHip, pose.LeftShoulder, pose.RightShoulder},
		))
	}

	return out
}

// topLeanErrors flags a trunk that is still folded over (or leaning back)
// at the frame where the hips are most open. During the pull itself a large
// spine-to-vertical angle is just the hinge, so only the top position is
// judged.
func (a *DeadliftAnalyzer) topLeanErrors(angles []JointAngles, valid []bool) []FormError {
	bestHip := math.Inf(-1)
	topFrame := -1

	for i, snapshot := range angles {
		if !valid[i] {
			continue
		}
		for _, hip := range []Angle{snapshot.LeftHip, snapshot.RightHip} {
			if hip.Valid && hip.Degrees > bestHip {
				bestHip = hip.Degrees
				topFrame = i
			}
		}
	}

	// Only judge the top position once the rep got reasonably close to
	// lockout; a failed pull is reported by lockoutErrors instead.
	if topFrame < 0 || bestHip < deadliftLockoutTarget*deadliftLockoutGraceFactor {
		return nil
	}

	spine := angles[topFrame].Spine
	if !spine.Valid || spine.Degrees <= deadliftTopLeanAllowance {
		return nil
	}

	deviation := spine.Degrees - deadliftTopLeanAllowance
	return []FormError{newFormError(
		DeviationSpinal, deviation, topFrame, topFrame,
		fmt.Sprintf("Trunk was %.0f° off vertical at lockout.", spine.Degrees),
		"Finish tall with the shoulders stacked over the hips.",
		[]int{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip},
	)}
}
