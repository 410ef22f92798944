package analysis

// Severity grades how far a measurement deviates from acceptable form.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// rank orders severities for comparisons; higher is worse.
func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// AtLeast reports whether s is as severe as other or worse.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

// DeviationKind names the class of form fault a deviation belongs to. Each
// kind carries its own severity thresholds because the kinds measure
// different quantities (degrees of asymmetry, degrees off a line, degrees
// short of a target, tempo ratio imbalance).
type DeviationKind string

const (
	DeviationKnee   DeviationKind = "knee"
	DeviationSpinal DeviationKind = "spinal"
	DeviationDepth  DeviationKind = "depth"
	DeviationTempo  DeviationKind = "tempo"
)

// severityThresholds holds the low and medium ceilings per kind. A deviation
// at or below the first value is low, at or below the second is medium,
// anything beyond is high.
var severityThresholds = map[DeviationKind][2]float64{
	DeviationKnee:   {8, 15},
	DeviationSpinal: {5, 12},
	DeviationDepth:  {10, 25},
	DeviationTempo:  {0.25, 0.6},
}

// ClassifySeverity maps a numeric deviation to a severity for the given
// kind. The classification is total and deterministic; kinds without a
// threshold table classify as high.
func ClassifySeverity(deviation float64, kind DeviationKind) Severity {
	t, ok := severityThresholds[kind]
	if !ok {
		return SeverityHigh
	}

	switch {
	case deviation <= t[0]:
		return SeverityLow
	case deviation <= t[1]:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}
