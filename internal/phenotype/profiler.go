package phenotype

import (
	"phenos/internal/genetics"
	"phenos/internal/model"
)

const (
	// expressionWeight scales each in-window relative's correlation score.
	expressionWeight = 1.5

	// minExpressionDistance and maxExpressionDistance bound the closed
	// genetic-distance window in which a relative contributes expression.
	// Both ends are inclusive; this is a deliberate tie-break choice.
	minExpressionDistance = 2
	maxExpressionDistance = 3

	// neurodivergenceThreshold classifies the accumulated score (strict).
	neurodivergenceThreshold = 0.7
)

// traitLadder is evaluated top-down against the final expression score.
// Every rung the score clears (strictly) contributes its trait, so rungs are
// cumulative rather than mutually exclusive.
var traitLadder = []struct {
	threshold float64
	trait     model.Trait
}{
	{0.8, model.TraitHeightenedSensoryProcessing},
	{0.7, model.TraitPatternRecognitionEnhanced},
	{0.6, model.TraitDetailOrientedFocus},
	{0.5, model.TraitAlternativeCommunicationPreference},
}

type Profiler struct{}

func NewProfiler() *Profiler {
	return &Profiler{}
}

// Predict aggregates marker overlap against every relative in the network
// into a phenotype profile. The accumulation is a pure summation, so the
// stored network order only fixes evaluation order, never the result.
func (p *Profiler) Predict(childMarkers []string, network []model.Individual) model.NeurodivergenceProfile {
	score := 0.0
	for _, relative := range network {
		result := genetics.ComputeDistance(childMarkers, relative.Markers)
		if result.Distance >= minExpressionDistance && result.Distance <= maxExpressionDistance {
			score += result.CorrelationScore * expressionWeight
		}
	}

	return model.NeurodivergenceProfile{
		IsNeurodivergent: score > neurodivergenceThreshold,
		SpectrumPosition: score,
		PrimaryTraits:    identifyPrimaryTraits(score),
	}
}

func identifyPrimaryTraits(score float64) []model.Trait {
	traits := make([]model.Trait, 0, len(traitLadder))
	for _, rung := range traitLadder {
		if score > rung.threshold {
			traits = append(traits, rung.trait)
		}
	}
	return traits
}
