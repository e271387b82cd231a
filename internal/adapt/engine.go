package adapt

import (
	"context"
	"sync"
	"time"

	"phenos/internal/model"
	"phenos/internal/ui"
)

// AdaptationReducedStimuli tags the audit record written after the
// reduce-stimuli directive set. The other directive sets leave no audit
// trail; only sensory reduction is tracked this way.
const AdaptationReducedStimuli = "reduced_stimuli"

// Observer receives the adapted surface and the active phenotype after every
// adaptation pass. The learning tracker implements this.
type Observer interface {
	Observe(surface ui.Surface, profile model.NeurodivergenceProfile)
}

// Engine maps phenotype traits onto directive sets and drives them into a
// capability surface. Directive branches are evaluated independently, so one
// profile may trigger several of them; their relative order is fixed and the
// learning observation always runs last.
type Engine struct {
	observer Observer
	clock    func() time.Time

	mu     sync.Mutex
	memory []model.AdaptationRecord
}

func NewEngine(observer Observer) *Engine {
	return &Engine{
		observer: observer,
		clock:    time.Now,
	}
}

// Adapt applies every directive set the profile's traits call for and hands
// the adapted surface to the observer. The surface is returned for chaining.
// Setter errors abort the pass and propagate unwrapped; the boundary between
// directive sets is the only place the pass yields to ctx.
func (e *Engine) Adapt(ctx context.Context, profile model.NeurodivergenceProfile, surface ui.Surface) (ui.Surface, error) {
	if profile.HasTrait(model.TraitHeightenedSensoryProcessing) {
		if err := ctx.Err(); err != nil {
			return surface, err
		}
		if err := applyReducedStimuli(surface); err != nil {
			return surface, err
		}
		e.record(AdaptationReducedStimuli)
	}

	if profile.HasTrait(model.TraitDetailOrientedFocus) {
		if err := ctx.Err(); err != nil {
			return surface, err
		}
		if err := applyEnhancedDetail(surface); err != nil {
			return surface, err
		}
	}

	if profile.HasTrait(model.TraitAlternativeCommunicationPreference) {
		if err := ctx.Err(); err != nil {
			return surface, err
		}
		if err := applyAlternativeCommunication(surface); err != nil {
			return surface, err
		}
	}

	if err := ctx.Err(); err != nil {
		return surface, err
	}
	if e.observer != nil {
		e.observer.Observe(surface, profile)
	}
	return surface, nil
}

// Memory returns a copy of the per-session adaptation audit log.
func (e *Engine) Memory() []model.AdaptationRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.AdaptationRecord, len(e.memory))
	copy(out, e.memory)
	return out
}

func (e *Engine) record(adaptation string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memory = append(e.memory, model.AdaptationRecord{
		Timestamp:  e.clock(),
		Adaptation: adaptation,
		Success:    true,
	})
}

func applyReducedStimuli(surface ui.Surface) error {
	if err := surface.SetAnimations(ui.AnimationMinimal); err != nil {
		return err
	}
	if err := surface.SetColorPalette(ui.PaletteLowContrast); err != nil {
		return err
	}
	if err := surface.SetTransitions(ui.TransitionInstant); err != nil {
		return err
	}
	if err := surface.SetSoundEffects(false); err != nil {
		return err
	}
	if err := surface.SetNotificationStyle(ui.NotificationVisualOnly); err != nil {
		return err
	}
	if err := surface.SetLayoutDensity(ui.DensitySpacious); err != nil {
		return err
	}
	return surface.SetTextSize(ui.TextLarge)
}

func applyEnhancedDetail(surface ui.Surface) error {
	if err := surface.EnableGridOverlay(); err != nil {
		return err
	}
	if err := surface.SetElementBorders(ui.BordersVisible); err != nil {
		return err
	}
	if err := surface.SetDataVisualization(ui.VisualizationDetailed); err != nil {
		return err
	}
	if err := surface.SetFocusStyle(ui.FocusHighContrastOutline); err != nil {
		return err
	}
	return surface.SetActiveElementTracking(true)
}

func applyAlternativeCommunication(surface ui.Surface) error {
	if err := surface.EnableGestureControl(); err != nil {
		return err
	}
	if err := surface.EnableVoiceCommands(); err != nil {
		return err
	}
	if err := surface.EnableSymbolCommunication(); err != nil {
		return err
	}
	if err := surface.SetFeedbackMode(ui.FeedbackMultimodal); err != nil {
		return err
	}
	return surface.SetConfirmationStyle(ui.ConfirmationExplicit)
}

func (e *Engine) setClockForTests(clock func() time.Time) {
	e.clock = clock
}
