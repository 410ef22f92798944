package analysis

import "sort"

// FormError is a diagnostic record of a form fault observed over a span of
// frames. AffectedLandmarks holds the pose landmark indices involved, so a
// caller can highlight them.
type FormError struct {
	Type              DeviationKind `json:"type"`
	Severity          Severity      `json:"severity"`
	StartIndex        int           `json:"start_index"`
	EndIndex          int           `json:"end_index"`
	Description       string        `json:"description"`
	Correction        string        `json:"correction"`
	AffectedLandmarks []int         `json:"affected_landmarks"`
}

// FormSuggestion is a coaching-facing recommendation, independent of any
// single diagnostic error. Priority 1 is the most urgent.
type FormSuggestion struct {
	Category            string `json:"category"`
	Priority            int    `json:"priority"`
	Suggestion          string `json:"suggestion"`
	ExpectedImprovement string `json:"expected_improvement"`
}

// newFormError builds a FormError, deriving the severity from the deviation
// via the per-kind threshold tables.
func newFormError(kind DeviationKind, deviation float64, start, end int, description, correction string, affected []int) FormError {
	return FormError{
		Type:              kind,
		Severity:          ClassifySeverity(deviation, kind),
		StartIndex:        start,
		EndIndex:          end,
		Description:       description,
		Correction:        correction,
		AffectedLandmarks: affected,
	}
}

var suggestionForKind = map[DeviationKind]FormSuggestion{
	DeviationDepth: {
		Category:            "range_of_motion",
		Suggestion:          "Work through the full range of the movement before adding load or speed.",
		ExpectedImprovement: "More complete muscle recruitment on every rep.",
	},
	DeviationKnee: {
		Category:            "alignment",
		Suggestion:          "Drive both knees evenly over the toes through the whole rep.",
		ExpectedImprovement: "Even loading across both legs and less joint stress.",
	},
	DeviationSpinal: {
		Category:            "posture",
		Suggestion:          "Brace the trunk before each rep and keep the chest up throughout.",
		ExpectedImprovement: "A neutral spine that stays safe under load.",
	},
	DeviationTempo: {
		Category:            "tempo",
		Suggestion:          "Match the lowering and lifting speeds instead of dropping into the bottom.",
		ExpectedImprovement: "Better control and more time under tension.",
	},
}

// buildSuggestions derives coaching suggestions from the detected errors and
// the overall quality scores. One suggestion per fault kind, prioritized by
// the worst severity seen for that kind; score-driven suggestions are added
// when the set as a whole was inconsistent or jerky.
func buildSuggestions(formErrors []FormError, consistency, smoothness float64) []FormSuggestion {
	var out []FormSuggestion

	worst := make(map[DeviationKind]Severity)
	for _, e := range formErrors {
		if cur, ok := worst[e.Type]; !ok || e.Severity.AtLeast(cur) {
			worst[e.Type] = e.Severity
		}
	}

	for kind, severity := range worst {
		s, ok := suggestionForKind[kind]
		if !ok {
			continue
		}
		switch severity {
		case SeverityHigh:
			s.Priority = 1
		case SeverityMedium:
			s.Priority = 2
		default:
			s.Priority = 3
		}
		out = append(out, s)
	}

	if consistency < 0.7 && worst[DeviationTempo] == "" {
		out = append(out, FormSuggestion{
			Category:            "tempo",
			Priority:            2,
			Suggestion:          "Aim for the same cadence on every rep of the set.",
			ExpectedImprovement: "Reps that are easier to compare and progress.",
		})
	}

	if smoothness < 0.6 {
		out = append(out, FormSuggestion{
			Category:            "control",
			Priority:            2,
			Suggestion:          "Slow the movement down until it feels smooth end to end.",
			ExpectedImprovement: "Less wasted effort and a steadier bar path.",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Category < out[j].Category
	})

	return out
}
