package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ConsistencyScore measures how evenly paced a set of reps was, in the
// [0, 1] range. Phases are grouped by type; each type with at least two
// occurrences contributes the coefficient of variation of its durations, and
// the score is 1 minus the average CV, floored at 0. Fewer than two phases
// is treated as no evidence of inconsistency, not a penalty, and scores 1.
func ConsistencyScore(phases []MovementPhase) float64 {
	if len(phases) < 2 {
		return 1.0
	}

	byType := make(map[PhaseType][]float64)
	for _, p := range phases {
		byType[p.Type] = append(byType[p.Type], p.Duration)
	}

	var cvs []float64
	for _, durations := range byType {
		if len(durations) < 2 {
			continue
		}
		mean := stat.Mean(durations, nil)
		if mean == 0 {
			continue
		}
		cvs = append(cvs, stat.StdDev(durations, nil)/mean)
	}

	if len(cvs) == 0 {
		return 1.0
	}

	return math.Max(0, 1-stat.Mean(cvs, nil))
}

// SmoothnessScore measures how free of jerk a displacement signal is, in the
// [0, 1] range. It sums the absolute second difference of the positions,
// normalizes by the position range times the sample count, and maps the
// result to a score. Sequences shorter than three samples score 1.
func SmoothnessScore(positions []float64) float64 {
	if len(positions) < 3 {
		return 1.0
	}

	var totalJerk float64
	for i := 0; i < len(positions)-2; i++ {
		totalJerk += math.Abs(positions[i+2] - 2*positions[i+1] + positions[i])
	}

	posRange := floats.Max(positions) - floats.Min(positions)
	if posRange == 0 {
		return 1.0
	}

	normalized := totalJerk / (posRange * float64(len(positions)))
	return math.Max(0, 1-math.Min(1, normalized/10))
}
