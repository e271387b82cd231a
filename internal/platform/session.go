package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"phenos/internal/adapt"
	"phenos/internal/family"
	"phenos/internal/learning"
	"phenos/internal/model"
	"phenos/internal/motion"
	"phenos/internal/phenotype"
	"phenos/internal/storage"
	"phenos/internal/ui"
)

// SessionConfig wires one interactive session. Surface is required; Store is
// optional and enables checkpointing after each adaptation pass.
type SessionConfig struct {
	ID      string
	Surface ui.Surface
	Store   storage.Store
	Family  *family.Registry
	Logger  *zap.Logger
}

// Session owns one profiler, rule engine, and learning tracker, serving one
// user at a time. Adaptation passes for a session never interleave; the
// internal mutex enforces that even if callers misbehave.
type Session struct {
	id       string
	surface  ui.Surface
	store    storage.Store
	family   *family.Registry
	logger   *zap.Logger
	profiler *phenotype.Profiler
	engine   *adapt.Engine
	tracker  *learning.Tracker

	mu      sync.Mutex
	profile model.NeurodivergenceProfile
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Surface == nil {
		return nil, errors.New("surface is required")
	}
	if cfg.Family == nil {
		cfg.Family = family.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	tracker := learning.NewTracker()
	return &Session{
		id:       cfg.ID,
		surface:  cfg.Surface,
		store:    cfg.Store,
		family:   cfg.Family,
		logger:   cfg.Logger.With(zap.String("session_id", cfg.ID)),
		profiler: phenotype.NewProfiler(),
		engine:   adapt.NewEngine(tracker),
		tracker:  tracker,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Family() *family.Registry {
	return s.family
}

// Resume reloads the checkpointed success index and observation log so
// ranking continues where a previous process left off.
func (s *Session) Resume(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	counts, ok, err := s.store.GetSuccessIndex(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load success index: %w", err)
	}
	if ok {
		s.tracker.RestoreSuccessIndex(counts)
		s.logger.Info("restored success index", zap.Int("states", len(counts)))
	}

	log, ok, err := s.store.GetObservations(ctx, s.id)
	if err != nil {
		return fmt.Errorf("load observations: %w", err)
	}
	if ok {
		s.tracker.RestoreObservations(log)
		s.logger.Info("restored observation log", zap.Int("observations", len(log)))
	}
	return nil
}

// Predict derives a phenotype profile for the given markers against the
// session's family network and retains it as the active profile.
func (s *Session) Predict(ctx context.Context, individualID string, markers []string) (model.NeurodivergenceProfile, error) {
	profile := s.profiler.Predict(markers, s.family.Network())
	profile.IndividualID = individualID
	profile.SchemaVersion = storage.CurrentSchemaVersion
	profile.CodecVersion = storage.CurrentCodecVersion

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.logger.Info("predicted phenotype",
		zap.String("individual_id", individualID),
		zap.Float64("spectrum_position", profile.SpectrumPosition),
		zap.Bool("neurodivergent", profile.IsNeurodivergent),
		zap.Int("traits", len(profile.PrimaryTraits)),
	)

	if s.store != nil {
		if err := s.store.SaveProfile(ctx, profile); err != nil {
			return model.NeurodivergenceProfile{}, fmt.Errorf("save profile: %w", err)
		}
	}
	return profile, nil
}

// Adapt runs one adaptation pass with the active profile and checkpoints the
// session state afterwards.
func (s *Session) Adapt(ctx context.Context) error {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()
	return s.AdaptWithProfile(ctx, profile)
}

// AdaptWithProfile runs one adaptation pass with an externally supplied
// profile, e.g. one produced by a separate profiling framework. The profile
// becomes the session's active profile.
func (s *Session) AdaptWithProfile(ctx context.Context, profile model.NeurodivergenceProfile) error {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	if _, err := s.engine.Adapt(ctx, profile, s.surface); err != nil {
		return err
	}
	s.logger.Info("adaptation pass complete",
		zap.Int("observations", len(s.tracker.Observations())),
	)
	return s.checkpoint(ctx)
}

// Interpret resolves a motion grid snapshot against the active profile.
func (s *Session) Interpret(grid motion.Grid) []motion.Action {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()
	return motion.Interpret(grid, profile)
}

// TopStates returns the currently highest-ranked successful UI states.
func (s *Session) TopStates() []model.UIState {
	return s.tracker.AnalyzePattern()
}

func (s *Session) Observations() []model.Observation {
	return s.tracker.Observations()
}

func (s *Session) AdaptationMemory() []model.AdaptationRecord {
	return s.engine.Memory()
}

func (s *Session) checkpoint(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveObservations(ctx, s.id, s.tracker.Observations()); err != nil {
		return fmt.Errorf("save observations: %w", err)
	}
	if err := s.store.SaveSuccessIndex(ctx, s.id, s.tracker.SuccessIndex()); err != nil {
		return fmt.Errorf("save success index: %w", err)
	}
	if err := s.store.SaveAdaptationMemory(ctx, s.id, s.engine.Memory()); err != nil {
		return fmt.Errorf("save adaptation memory: %w", err)
	}
	return nil
}

// Manager tracks active sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Add(session *Session) error {
	if session == nil {
		return errors.New("session is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[session.ID()]; exists {
		return fmt.Errorf("session already active: %s", session.ID())
	}
	m.sessions[session.ID()] = session
	return nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) ActiveSessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
