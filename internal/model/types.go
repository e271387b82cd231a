package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Individual is a registered family member. Immutable once registered.
type Individual struct {
	ID        string                  `json:"id"`
	Markers   []string                `json:"markers"`
	Phenotype *NeurodivergenceProfile `json:"phenotype,omitempty"`
}

// FamilyUnion pairs two registered individuals. GeneticDistance is a
// placeholder carried for forward compatibility and defaults to 0.
type FamilyUnion struct {
	UnionID         string     `json:"union_id"`
	Mother          Individual `json:"mother"`
	Father          Individual `json:"father"`
	GeneticDistance float64    `json:"genetic_distance"`
}

// GeneticDistanceResult is ephemeral and recomputed on demand, never stored.
// Distance and CorrelationScore are defined relative to the first operand.
type GeneticDistanceResult struct {
	Distance         int      `json:"distance"`
	SharedTraits     []string `json:"shared_traits"`
	CorrelationScore float64  `json:"correlation_score"`
}

type Trait string

const (
	TraitHeightenedSensoryProcessing        Trait = "heightened_sensory_processing"
	TraitPatternRecognitionEnhanced         Trait = "pattern_recognition_enhanced"
	TraitDetailOrientedFocus                Trait = "detail_oriented_focus"
	TraitAlternativeCommunicationPreference Trait = "alternative_communication_preference"
)

// NeurodivergenceProfile is produced once per prediction and never mutated.
// SpectrumPosition is the accumulated expression score, unbounded above.
type NeurodivergenceProfile struct {
	VersionedRecord
	IndividualID       string            `json:"individual_id,omitempty"`
	IsNeurodivergent   bool              `json:"is_neurodivergent"`
	SpectrumPosition   float64           `json:"spectrum_position"`
	PrimaryTraits      []Trait           `json:"primary_traits"`
	PreferredMotionMap map[string]string `json:"preferred_motion_map,omitempty"`
}

func (p NeurodivergenceProfile) HasTrait(trait Trait) bool {
	for _, t := range p.PrimaryTraits {
		if t == trait {
			return true
		}
	}
	return false
}

// UIState is the observable state of a capability surface. Keys are setting
// names, values are whatever the surface reports for them.
type UIState map[string]any

// Clone returns a shallow copy so callers can retain snapshots safely.
func (s UIState) Clone() UIState {
	if s == nil {
		return nil
	}
	out := make(UIState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type InteractionMetrics struct {
	TaskCompletionTime   float64 `json:"task_completion_time"`
	ErrorRate            float64 `json:"error_rate"`
	NavigationEfficiency float64 `json:"navigation_efficiency"`
	CognitiveLoad        float64 `json:"cognitive_load"`
	UserSatisfaction     float64 `json:"user_satisfaction"`
}

// Observation is appended to the learning log and never mutated afterwards.
type Observation struct {
	VersionedRecord
	ID              string                 `json:"id"`
	Timestamp       time.Time              `json:"timestamp"`
	UIStateSnapshot UIState                `json:"ui_state_snapshot"`
	PhenotypeState  NeurodivergenceProfile `json:"phenotype_state"`
	Metrics         InteractionMetrics     `json:"interaction_metrics"`
}

// AdaptationRecord is one entry in the per-session adaptation memory log, a
// plain audit trail distinct from the learning observation log.
type AdaptationRecord struct {
	VersionedRecord
	Timestamp  time.Time `json:"timestamp"`
	Adaptation string    `json:"adaptation"`
	Success    bool      `json:"success"`
}

// SuccessCount pairs a canonical UI-state key with its accumulated success
// count. Record order preserves the index's insertion order.
type SuccessCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
