package ui

import "phenos/internal/model"

type AnimationLevel string

const (
	AnimationFull    AnimationLevel = "full"
	AnimationMinimal AnimationLevel = "minimal"
)

type ColorPalette string

const (
	PaletteStandard    ColorPalette = "standard"
	PaletteLowContrast ColorPalette = "low_contrast"
)

type TransitionStyle string

const (
	TransitionAnimated TransitionStyle = "animated"
	TransitionInstant  TransitionStyle = "instant"
)

type NotificationStyle string

const (
	NotificationDefault    NotificationStyle = "default"
	NotificationVisualOnly NotificationStyle = "visual_only"
)

type LayoutDensity string

const (
	DensityCompact  LayoutDensity = "compact"
	DensitySpacious LayoutDensity = "spacious"
)

type TextSize string

const (
	TextNormal TextSize = "normal"
	TextLarge  TextSize = "large"
)

type BorderStyle string

const (
	BordersHidden  BorderStyle = "hidden"
	BordersVisible BorderStyle = "visible"
)

type VisualizationMode string

const (
	VisualizationSummary  VisualizationMode = "summary"
	VisualizationDetailed VisualizationMode = "detailed"
)

type FocusStyle string

const (
	FocusDefault             FocusStyle = "default"
	FocusHighContrastOutline FocusStyle = "high_contrast_outline"
)

type FeedbackMode string

const (
	FeedbackVisual     FeedbackMode = "visual"
	FeedbackMultimodal FeedbackMode = "multimodal"
)

type ConfirmationStyle string

const (
	ConfirmationImplicit ConfirmationStyle = "implicit"
	ConfirmationExplicit ConfirmationStyle = "explicit"
)

// Surface is the capability set the adaptation engine drives. Setters are
// fire-and-forget: the engine never reads their effect back except through
// the accessors below. Setter errors propagate to the caller untouched; the
// engine performs no retries.
type Surface interface {
	SetAnimations(level AnimationLevel) error
	SetColorPalette(palette ColorPalette) error
	SetTransitions(style TransitionStyle) error
	SetSoundEffects(enabled bool) error
	SetNotificationStyle(style NotificationStyle) error
	SetLayoutDensity(density LayoutDensity) error
	SetTextSize(size TextSize) error
	EnableGridOverlay() error
	SetElementBorders(style BorderStyle) error
	SetDataVisualization(mode VisualizationMode) error
	SetFocusStyle(style FocusStyle) error
	SetActiveElementTracking(enabled bool) error
	EnableGestureControl() error
	EnableVoiceCommands() error
	EnableSymbolCommunication() error
	SetFeedbackMode(mode FeedbackMode) error
	SetConfirmationStyle(style ConfirmationStyle) error

	CurrentState() model.UIState
	TaskTime() float64
	ErrorCount() float64
	NavigationScore() float64
	CognitiveLoadEstimate() float64
	SatisfactionScore() float64
}
