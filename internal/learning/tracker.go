package learning

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"phenos/internal/model"
	"phenos/internal/ui"
)

const (
	// analysisWindow bounds how many recent observations one analysis pass
	// considers. Success counts still accumulate across passes.
	analysisWindow = 10

	// satisfactionThreshold gates which observations count as successes
	// (strict comparison).
	satisfactionThreshold = 0.8

	// topStateLimit caps how many ranked states AnalyzePattern returns.
	topStateLimit = 5
)

// Tracker accumulates (ui-state, phenotype, metrics) observations and ranks
// recurring high-satisfaction states. One tracker serves one session; sharing
// an instance across sessions requires external synchronization around
// Observe and AnalyzePattern, which the internal mutex provides.
type Tracker struct {
	mu    sync.Mutex
	clock func() time.Time

	log []model.Observation

	index      map[string]int
	indexOrder []string
}

func NewTracker() *Tracker {
	return &Tracker{
		clock: time.Now,
		index: make(map[string]int),
	}
}

// Observe reads the six accessor values off the surface, appends an
// observation to the log, and re-runs pattern analysis. The log is
// append-only; entries are never mutated or evicted.
func (t *Tracker) Observe(surface ui.Surface, profile model.NeurodivergenceProfile) {
	observation := model.Observation{
		ID:              uuid.NewString(),
		Timestamp:       t.clock(),
		UIStateSnapshot: surface.CurrentState(),
		PhenotypeState:  profile,
		Metrics: model.InteractionMetrics{
			TaskCompletionTime:   surface.TaskTime(),
			ErrorRate:            surface.ErrorCount(),
			NavigationEfficiency: surface.NavigationScore(),
			CognitiveLoad:        surface.CognitiveLoadEstimate(),
			UserSatisfaction:     surface.SatisfactionScore(),
		},
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.log = append(t.log, observation)
	t.analyzeLocked()
}

// AnalyzePattern scans the most recent observations, credits every
// high-satisfaction state in the persistent success index, and returns up to
// five states ordered by accumulated count. Ties keep the index's insertion
// order.
func (t *Tracker) AnalyzePattern() []model.UIState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.analyzeLocked()
}

func (t *Tracker) analyzeLocked() []model.UIState {
	window := t.log
	if len(window) > analysisWindow {
		window = window[len(window)-analysisWindow:]
	}

	for _, observation := range window {
		if observation.Metrics.UserSatisfaction <= satisfactionThreshold {
			continue
		}
		key, err := CanonicalKey(observation.UIStateSnapshot)
		if err != nil {
			continue
		}
		if _, seen := t.index[key]; !seen {
			t.indexOrder = append(t.indexOrder, key)
		}
		t.index[key]++
	}

	ranked := make([]model.SuccessCount, 0, len(t.indexOrder))
	for _, key := range t.indexOrder {
		ranked = append(ranked, model.SuccessCount{Key: key, Count: t.index[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topStateLimit {
		ranked = ranked[:topStateLimit]
	}

	states := make([]model.UIState, 0, len(ranked))
	for _, entry := range ranked {
		state, err := DecodeKey(entry.Key)
		if err != nil {
			continue
		}
		states = append(states, state)
	}
	return states
}

// Observations returns a copy of the full observation log.
func (t *Tracker) Observations() []model.Observation {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Observation, len(t.log))
	copy(out, t.log)
	return out
}

// SuccessIndex returns the accumulated counts in index insertion order.
func (t *Tracker) SuccessIndex() []model.SuccessCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.SuccessCount, 0, len(t.indexOrder))
	for _, key := range t.indexOrder {
		out = append(out, model.SuccessCount{Key: key, Count: t.index[key]})
	}
	return out
}

// RestoreObservations replaces the log with a checkpointed one. Used when
// resuming a session; the success index is restored separately.
func (t *Tracker) RestoreObservations(log []model.Observation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.log = make([]model.Observation, len(log))
	copy(t.log, log)
}

// RestoreSuccessIndex seeds the index from persisted counts, preserving the
// given order as insertion order. Used when resuming a checkpointed session.
func (t *Tracker) RestoreSuccessIndex(counts []model.SuccessCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.index = make(map[string]int, len(counts))
	t.indexOrder = t.indexOrder[:0]
	for _, entry := range counts {
		if _, seen := t.index[entry.Key]; !seen {
			t.indexOrder = append(t.indexOrder, entry.Key)
		}
		t.index[entry.Key] += entry.Count
	}
}

func (t *Tracker) setClockForTests(clock func() time.Time) {
	t.clock = clock
}
