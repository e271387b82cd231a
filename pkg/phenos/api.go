// Package phenos is the public entry point for embedding the phenotype
// inference and interface adaptation pipeline.
package phenos

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"phenos/internal/config"
	"phenos/internal/family"
	"phenos/internal/model"
	"phenos/internal/motion"
	"phenos/internal/platform"
	"phenos/internal/storage"
	"phenos/internal/ui"
)

type Options struct {
	StoreKind string
	DBPath    string
	Surface   ui.Surface
	Logger    *zap.Logger
	SessionID string
}

// Grid re-exports the motion grid type for callers.
type Grid = motion.Grid

// Action re-exports the symbolic action type for callers.
type Action = motion.Action

type Client struct {
	store   storage.Store
	session *platform.Session
	family  *family.Registry
}

// New builds a client with one session. Unset options fall back to the
// process environment (PHENOS_STORE, PHENOS_DB_PATH) and then to an
// in-memory store with a simulated surface.
func New(opts Options) (*Client, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = envCfg.StoreKind
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = envCfg.DBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	surface := opts.Surface
	if surface == nil {
		surface = ui.NewSimSurface()
	}

	registry := family.NewRegistry()
	session, err := platform.NewSession(platform.SessionConfig{
		ID:      opts.SessionID,
		Surface: surface,
		Store:   store,
		Family:  registry,
		Logger:  opts.Logger,
	})
	if err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}

	return &Client{
		store:   store,
		session: session,
		family:  registry,
	}, nil
}

func (c *Client) SessionID() string {
	return c.session.ID()
}

// RegisterIndividual adds a relative to the family network.
func (c *Client) RegisterIndividual(individual model.Individual) error {
	return c.family.RegisterIndividual(individual)
}

// RegisterUnion links two registered individuals under a union id.
func (c *Client) RegisterUnion(unionID, motherID, fatherID string) (model.FamilyUnion, error) {
	return c.family.RegisterUnion(unionID, motherID, fatherID)
}

// Resume reloads any checkpointed learning state for the session.
func (c *Client) Resume(ctx context.Context) error {
	return c.session.Resume(ctx)
}

// Predict infers a phenotype profile for the given markers against the
// registered family network and makes it the session's active profile.
func (c *Client) Predict(ctx context.Context, individualID string, markers []string) (model.NeurodivergenceProfile, error) {
	if individualID == "" {
		return model.NeurodivergenceProfile{}, errors.New("individual id is required")
	}
	return c.session.Predict(ctx, individualID, markers)
}

// Adapt runs one adaptation pass with the active profile.
func (c *Client) Adapt(ctx context.Context) error {
	return c.session.Adapt(ctx)
}

// AdaptWithProfile runs one adaptation pass with an external profile.
func (c *Client) AdaptWithProfile(ctx context.Context, profile model.NeurodivergenceProfile) error {
	return c.session.AdaptWithProfile(ctx, profile)
}

// Interpret resolves a motion grid against the active profile.
func (c *Client) Interpret(grid Grid) []Action {
	return c.session.Interpret(grid)
}

// InterpretWithProfile resolves a motion grid against an external profile
// without touching the session's active profile.
func (c *Client) InterpretWithProfile(grid Grid, profile model.NeurodivergenceProfile) []Action {
	return motion.Interpret(grid, profile)
}

// TopStates returns the highest-ranked successful UI states.
func (c *Client) TopStates() []model.UIState {
	return c.session.TopStates()
}

// Observations returns the session's full observation log.
func (c *Client) Observations() []model.Observation {
	return c.session.Observations()
}

// AdaptationMemory returns the session's adaptation audit trail.
func (c *Client) AdaptationMemory() []model.AdaptationRecord {
	return c.session.AdaptationMemory()
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}
