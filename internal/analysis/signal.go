package analysis

import "math"

// Signal-processing tunables. The transition smoothing window and minimum
// transition spacing were settled against recorded rep data; treat them as
// calibration values, not exact constants.
const (
	// DefaultSmoothWindow is the moving-average window used for
	// displacement signals.
	DefaultSmoothWindow = 3
	// transitionSmoothWindow is the wider window applied to velocities
	// before transition detection.
	transitionSmoothWindow = 5
	// minTransitionSpacing is the minimum sample gap between an extremum
	// transition and the previously detected transition; closer extrema are
	// treated as sensor noise.
	minTransitionSpacing = 5
)

// Smooth returns a centered moving average of values. The window shrinks at
// the sequence boundaries instead of padding, so the output has the same
// length as the input. A window of 1 or less returns a copy.
func Smooth(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}

	half := window / 2
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(values)-1 {
			hi = len(values) - 1
		}

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}

	return out
}

// Velocity returns the first difference of values. The output is one sample
// shorter than the input.
func Velocity(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	out := make([]float64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		out[i] = values[i+1] - values[i]
	}
	return out
}

// DetectPhaseTransitions finds the indices where a velocity signal reverses,
// marking movement phase boundaries. Velocities are smoothed first, then two
// rules apply and their union is returned in ascending order:
//
//  1. Sign reversal: the signal's last sample with magnitude above threshold
//     had the opposite sign. The magnitude gate keeps low-amplitude jitter
//     around zero from registering as reversals.
//  2. Local extremum with magnitude above threshold, at least
//     minTransitionSpacing samples after the previously detected transition.
//     The extremum rule only fires while the current half-cycle has no
//     transition yet; once a reversal marked the boundary, the lobe's peak
//     is part of the same movement, not a second boundary.
func DetectPhaseTransitions(velocities []float64, threshold float64) []int {
	if len(velocities) < 2 {
		return nil
	}

	v := Smooth(velocities, transitionSmoothWindow)

	var transitions []int
	lastDetected := -minTransitionSpacing
	lastSign := 0
	lobeMarked := false

	appendTransition := func(i int) {
		if len(transitions) > 0 && transitions[len(transitions)-1] == i {
			return
		}
		transitions = append(transitions, i)
		lastDetected = i
	}

	for i := range v {
		significant := math.Abs(v[i]) > threshold

		if significant {
			sign := 1
			if v[i] < 0 {
				sign = -1
			}
			if sign != lastSign {
				if lastSign != 0 {
					appendTransition(i)
				}
				lobeMarked = lastSign != 0
				lastSign = sign
			}
		}

		if significant && !lobeMarked && i > 0 && i < len(v)-1 {
			peak := v[i] > v[i-1] && v[i] > v[i+1]
			valley := v[i] < v[i-1] && v[i] < v[i+1]
			if (peak || valley) && i-lastDetected >= minTransitionSpacing {
				appendTransition(i)
				lobeMarked = true
			}
		}
	}

	return transitions
}
