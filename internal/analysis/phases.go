package analysis

// PhaseType labels a span of a movement. The vocabulary is shared across
// exercises; which phases a well-formed rep contains, and in what order, is
// exercise-specific.
type PhaseType string

const (
	// PhaseDescent is downward travel of the tracked reference point.
	PhaseDescent PhaseType = "descent"
	// PhaseAscent is upward travel of the tracked reference point.
	PhaseAscent PhaseType = "ascent"
	// PhaseHold is a span with no significant net movement.
	PhaseHold PhaseType = "hold"
)

// MovementPhase is a labeled, contiguous span of frames within a sequence.
// Duration is in frames.
type MovementPhase struct {
	Type       PhaseType `json:"type"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Duration   float64   `json:"duration"`
}

// segmentByVelocity splits a displacement signal into contiguous labeled
// phases. The signal is in image coordinates, so positive velocity means the
// reference point is moving down the frame. Adjacent segments that resolve
// to the same label are merged, so a transition detected mid-descent does
// not split the descent in two.
func segmentByVelocity(signal []float64, cfg Config) []MovementPhase {
	if len(signal) < 2 {
		return nil
	}

	smoothed := Smooth(signal, cfg.SmoothWindow)
	vel := Velocity(smoothed)
	transitions := DetectPhaseTransitions(vel, cfg.TransitionThreshold)

	bounds := make([]int, 0, len(transitions)+2)
	bounds = append(bounds, 0)
	for _, t := range transitions {
		if t > bounds[len(bounds)-1] && t < len(signal)-1 {
			bounds = append(bounds, t)
		}
	}
	bounds = append(bounds, len(signal)-1)

	// A segment's net movement must clear this band to count as travel
	// rather than a hold.
	holdBand := cfg.TransitionThreshold / 2

	var phases []MovementPhase
	for k := 0; k+1 < len(bounds); k++ {
		start, end := bounds[k], bounds[k+1]
		if end <= start {
			continue
		}

		var sum float64
		for i := start; i < end; i++ {
			sum += vel[i]
		}
		mean := sum / float64(end-start)

		typ := PhaseHold
		if mean > holdBand {
			typ = PhaseDescent
		} else if mean < -holdBand {
			typ = PhaseAscent
		}

		if n := len(phases); n > 0 && phases[n-1].Type == typ {
			phases[n-1].EndIndex = end
			phases[n-1].Duration = float64(end - phases[n-1].StartIndex)
			continue
		}

		phases = append(phases, MovementPhase{
			Type:       typ,
			StartIndex: start,
			EndIndex:   end,
			Duration:   float64(end - start),
		})
	}

	return phases
}

// countReps counts completed first→second phase pairs, skipping holds in
// between. A squat rep is descent→ascent; a deadlift rep is ascent→descent.
func countReps(phases []MovementPhase, first, second PhaseType) int {
	reps := 0
	sawFirst := false
	for _, p := range phases {
		switch p.Type {
		case first:
			sawFirst = true
		case second:
			if sawFirst {
				reps++
				sawFirst = false
			}
		}
	}
	return reps
}

// repWindows pairs each first-phase span with the following second-phase
// span, returning the frame windows of completed reps.
func repWindows(phases []MovementPhase, first, second PhaseType) [][2]int {
	var windows [][2]int
	start := -1
	for _, p := range phases {
		switch p.Type {
		case first:
			if start < 0 {
				start = p.StartIndex
			}
		case second:
			if start >= 0 {
				windows = append(windows, [2]int{start, p.EndIndex})
				start = -1
			}
		}
	}
	return windows
}
