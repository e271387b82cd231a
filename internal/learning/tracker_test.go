package learning

import (
	"fmt"
	"testing"
	"time"

	"phenos/internal/model"
	"phenos/internal/ui"
)

func highSatisfactionSurface(marker string) *ui.SimSurface {
	surface := ui.NewSimSurface()
	surface.SetStateValue("layout", marker)
	surface.SetMetrics(model.InteractionMetrics{
		TaskCompletionTime:   12,
		ErrorRate:            0.1,
		NavigationEfficiency: 0.9,
		CognitiveLoad:        0.3,
		UserSatisfaction:     0.95,
	})
	return surface
}

func TestObserveCapturesAccessorValues(t *testing.T) {
	tracker := NewTracker()
	tracker.setClockForTests(func() time.Time { return time.Unix(100, 0) })

	surface := ui.NewSimSurface()
	surface.SetStateValue("text_size", "large")
	surface.SetMetrics(model.InteractionMetrics{
		TaskCompletionTime:   30,
		ErrorRate:            0.2,
		NavigationEfficiency: 0.7,
		CognitiveLoad:        0.4,
		UserSatisfaction:     0.6,
	})

	tracker.Observe(surface, model.NeurodivergenceProfile{SpectrumPosition: 0.75})

	log := tracker.Observations()
	if len(log) != 1 {
		t.Fatalf("expected one observation, got %d", len(log))
	}
	obs := log[0]
	if obs.ID == "" {
		t.Fatal("expected observation id")
	}
	if !obs.Timestamp.Equal(time.Unix(100, 0)) {
		t.Fatalf("unexpected timestamp: %v", obs.Timestamp)
	}
	if obs.Metrics.TaskCompletionTime != 30 || obs.Metrics.UserSatisfaction != 0.6 {
		t.Fatalf("unexpected metrics: %+v", obs.Metrics)
	}
	if obs.UIStateSnapshot["text_size"] != "large" {
		t.Fatalf("unexpected snapshot: %v", obs.UIStateSnapshot)
	}
	if obs.PhenotypeState.SpectrumPosition != 0.75 {
		t.Fatalf("unexpected phenotype state: %+v", obs.PhenotypeState)
	}
}

func TestAnalyzePatternReturnsAtMostFive(t *testing.T) {
	tracker := NewTracker()
	for i := 0; i < 7; i++ {
		tracker.Observe(highSatisfactionSurface(fmt.Sprintf("layout-%d", i)), model.NeurodivergenceProfile{})
	}

	states := tracker.AnalyzePattern()
	if len(states) != 5 {
		t.Fatalf("expected 5 ranked states, got %d", len(states))
	}
}

func TestAnalyzePatternIgnoresLowSatisfaction(t *testing.T) {
	tracker := NewTracker()
	surface := ui.NewSimSurface()
	surface.SetStateValue("layout", "plain")
	surface.SetMetrics(model.InteractionMetrics{UserSatisfaction: 0.8})

	tracker.Observe(surface, model.NeurodivergenceProfile{})

	// 0.8 is not strictly greater than the threshold.
	if states := tracker.AnalyzePattern(); len(states) != 0 {
		t.Fatalf("expected no successful states, got %v", states)
	}
	if index := tracker.SuccessIndex(); len(index) != 0 {
		t.Fatalf("expected empty success index, got %v", index)
	}
}

func TestAnalyzePatternWindowExcludesOldObservations(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe(highSatisfactionSurface("early"), model.NeurodivergenceProfile{})

	// Push the early observation out of the 10-observation window.
	for i := 0; i < 10; i++ {
		surface := ui.NewSimSurface()
		surface.SetStateValue("layout", fmt.Sprintf("filler-%d", i))
		surface.SetMetrics(model.InteractionMetrics{UserSatisfaction: 0.1})
		tracker.Observe(surface, model.NeurodivergenceProfile{})
	}

	index := tracker.SuccessIndex()
	if len(index) != 1 {
		t.Fatalf("expected one indexed state, got %v", index)
	}
	credited := index[0].Count

	tracker.AnalyzePattern()
	tracker.AnalyzePattern()

	index = tracker.SuccessIndex()
	if len(index) != 1 {
		t.Fatalf("expected the early state to stay indexed, got %v", index)
	}
	if index[0].Count != credited {
		t.Fatalf("expected out-of-window count to stay at %d, got %d", credited, index[0].Count)
	}
}

func TestAnalyzePatternCountsPersistAcrossCalls(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe(highSatisfactionSurface("sticky"), model.NeurodivergenceProfile{})

	before := tracker.SuccessIndex()[0].Count
	tracker.AnalyzePattern()
	after := tracker.SuccessIndex()[0].Count
	if after != before+1 {
		t.Fatalf("expected in-window state to accumulate, got %d -> %d", before, after)
	}
}

func TestAnalyzePatternTieBreakIsInsertionOrder(t *testing.T) {
	first := ui.NewSimSurface()
	first.SetStateValue("layout", "first")
	second := ui.NewSimSurface()
	second.SetStateValue("layout", "second")

	firstKey, err := CanonicalKey(first.CurrentState())
	if err != nil {
		t.Fatalf("canonical key: %v", err)
	}
	secondKey, err := CanonicalKey(second.CurrentState())
	if err != nil {
		t.Fatalf("canonical key: %v", err)
	}

	tracker := NewTracker()
	tracker.RestoreSuccessIndex([]model.SuccessCount{
		{Key: firstKey, Count: 3},
		{Key: secondKey, Count: 3},
	})

	states := tracker.AnalyzePattern()
	if len(states) != 2 {
		t.Fatalf("expected two states, got %d", len(states))
	}
	if states[0]["layout"] != "first" || states[1]["layout"] != "second" {
		t.Fatalf("expected first-inserted key to win the tie, got %v", states)
	}

	reversed := NewTracker()
	reversed.RestoreSuccessIndex([]model.SuccessCount{
		{Key: secondKey, Count: 3},
		{Key: firstKey, Count: 3},
	})
	states = reversed.AnalyzePattern()
	if states[0]["layout"] != "second" {
		t.Fatalf("expected reversed insertion order to flip the tie, got %v", states)
	}
}

func TestRestoreObservationsReplacesLog(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe(highSatisfactionSurface("live"), model.NeurodivergenceProfile{})

	checkpoint := []model.Observation{
		{ID: "obs-1", UIStateSnapshot: model.UIState{"layout": "restored"}},
		{ID: "obs-2", UIStateSnapshot: model.UIState{"layout": "restored"}},
	}
	tracker.RestoreObservations(checkpoint)

	log := tracker.Observations()
	if len(log) != 2 || log[0].ID != "obs-1" {
		t.Fatalf("expected restored log, got %v", log)
	}
}

func TestEquivalentStatesMergeInIndex(t *testing.T) {
	tracker := NewTracker()

	a := ui.NewSimSurface()
	a.SetStateValue("text_size", "large")
	a.SetStateValue("layout_density", "spacious")
	a.SetMetrics(model.InteractionMetrics{UserSatisfaction: 0.9})

	b := ui.NewSimSurface()
	b.SetStateValue("layout_density", "spacious")
	b.SetStateValue("text_size", "large")
	b.SetMetrics(model.InteractionMetrics{UserSatisfaction: 0.9})

	tracker.Observe(a, model.NeurodivergenceProfile{})
	tracker.Observe(b, model.NeurodivergenceProfile{})

	index := tracker.SuccessIndex()
	if len(index) != 1 {
		t.Fatalf("expected equivalent states to share one index entry, got %v", index)
	}
}

func TestCanonicalKeyIsOrderIndependent(t *testing.T) {
	a := model.UIState{"animations": "minimal", "text_size": "large", "sound_effects": false}
	b := model.UIState{"sound_effects": false, "text_size": "large", "animations": "minimal"}

	keyA, err := CanonicalKey(a)
	if err != nil {
		t.Fatalf("canonical key: %v", err)
	}
	keyB, err := CanonicalKey(b)
	if err != nil {
		t.Fatalf("canonical key: %v", err)
	}
	if keyA != keyB {
		t.Fatalf("expected identical keys, got %q and %q", keyA, keyB)
	}

	decoded, err := DecodeKey(keyA)
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	if decoded["animations"] != "minimal" || decoded["sound_effects"] != false {
		t.Fatalf("unexpected decoded state: %v", decoded)
	}
}
