package ui

import (
	"sync"

	"phenos/internal/model"
)

// SimSurface is an in-memory capability surface used by the CLI demo and the
// test suite. It records every setter call in order and serves interaction
// metrics that tests and harnesses inject via SetMetrics.
type SimSurface struct {
	mu      sync.Mutex
	state   model.UIState
	metrics model.InteractionMetrics
	calls   []string
}

func NewSimSurface() *SimSurface {
	return &SimSurface{state: make(model.UIState)}
}

func (s *SimSurface) set(call, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[key] = value
	s.calls = append(s.calls, call)
	return nil
}

func (s *SimSurface) SetAnimations(level AnimationLevel) error {
	return s.set("setAnimations", "animations", string(level))
}

func (s *SimSurface) SetColorPalette(palette ColorPalette) error {
	return s.set("setColorPalette", "color_palette", string(palette))
}

func (s *SimSurface) SetTransitions(style TransitionStyle) error {
	return s.set("setTransitions", "transitions", string(style))
}

func (s *SimSurface) SetSoundEffects(enabled bool) error {
	return s.set("setSoundEffects", "sound_effects", enabled)
}

func (s *SimSurface) SetNotificationStyle(style NotificationStyle) error {
	return s.set("setNotificationStyle", "notification_style", string(style))
}

func (s *SimSurface) SetLayoutDensity(density LayoutDensity) error {
	return s.set("setLayoutDensity", "layout_density", string(density))
}

func (s *SimSurface) SetTextSize(size TextSize) error {
	return s.set("setTextSize", "text_size", string(size))
}

func (s *SimSurface) EnableGridOverlay() error {
	return s.set("enableGridOverlay", "grid_overlay", true)
}

func (s *SimSurface) SetElementBorders(style BorderStyle) error {
	return s.set("setElementBorders", "element_borders", string(style))
}

func (s *SimSurface) SetDataVisualization(mode VisualizationMode) error {
	return s.set("setDataVisualization", "data_visualization", string(mode))
}

func (s *SimSurface) SetFocusStyle(style FocusStyle) error {
	return s.set("setFocusStyle", "focus_style", string(style))
}

func (s *SimSurface) SetActiveElementTracking(enabled bool) error {
	return s.set("setActiveElementTracking", "active_element_tracking", enabled)
}

func (s *SimSurface) EnableGestureControl() error {
	return s.set("enableGestureControl", "gesture_control", true)
}

func (s *SimSurface) EnableVoiceCommands() error {
	return s.set("enableVoiceCommands", "voice_commands", true)
}

func (s *SimSurface) EnableSymbolCommunication() error {
	return s.set("enableSymbolCommunication", "symbol_communication", true)
}

func (s *SimSurface) SetFeedbackMode(mode FeedbackMode) error {
	return s.set("setFeedbackMode", "feedback_mode", string(mode))
}

func (s *SimSurface) SetConfirmationStyle(style ConfirmationStyle) error {
	return s.set("setConfirmationStyle", "confirmation_style", string(style))
}

func (s *SimSurface) CurrentState() model.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *SimSurface) TaskTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.TaskCompletionTime
}

func (s *SimSurface) ErrorCount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.ErrorRate
}

func (s *SimSurface) NavigationScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.NavigationEfficiency
}

func (s *SimSurface) CognitiveLoadEstimate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.CognitiveLoad
}

func (s *SimSurface) SatisfactionScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics.UserSatisfaction
}

// SetMetrics replaces the metrics served by the accessor methods.
func (s *SimSurface) SetMetrics(metrics model.InteractionMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = metrics
}

// SetStateValue injects one raw state entry, bypassing the setter log.
func (s *SimSurface) SetStateValue(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[key] = value
}

// Calls returns the ordered names of every setter invoked so far.
func (s *SimSurface) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
