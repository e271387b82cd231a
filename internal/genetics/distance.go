package genetics

import "phenos/internal/model"

// ComputeDistance scores marker overlap between two individuals. The result
// is relative to a: distance is how many of a's markers b does not share, and
// the correlation score is the shared fraction of a's markers. Callers decide
// which operand is "self"; swapping operands changes the result.
func ComputeDistance(a, b []string) model.GeneticDistanceResult {
	inB := make(map[string]struct{}, len(b))
	for _, marker := range b {
		inB[marker] = struct{}{}
	}

	shared := make([]string, 0, len(a))
	seen := make(map[string]struct{}, len(a))
	for _, marker := range a {
		if _, dup := seen[marker]; dup {
			continue
		}
		seen[marker] = struct{}{}
		if _, ok := inB[marker]; ok {
			shared = append(shared, marker)
		}
	}

	total := len(seen)
	correlation := 0.0
	if total > 0 {
		correlation = float64(len(shared)) / float64(total)
	}

	return model.GeneticDistanceResult{
		Distance:         total - len(shared),
		SharedTraits:     shared,
		CorrelationScore: correlation,
	}
}
