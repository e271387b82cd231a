package storage

import (
	"context"

	"phenos/internal/model"
)

// Store defines checkpoint persistence for session state: predicted profiles
// by individual, and the observation log, success index, and adaptation
// memory by session.
type Store interface {
	Init(ctx context.Context) error
	SaveProfile(ctx context.Context, profile model.NeurodivergenceProfile) error
	GetProfile(ctx context.Context, individualID string) (model.NeurodivergenceProfile, bool, error)
	SaveObservations(ctx context.Context, sessionID string, log []model.Observation) error
	GetObservations(ctx context.Context, sessionID string) ([]model.Observation, bool, error)
	SaveSuccessIndex(ctx context.Context, sessionID string, counts []model.SuccessCount) error
	GetSuccessIndex(ctx context.Context, sessionID string) ([]model.SuccessCount, bool, error)
	SaveAdaptationMemory(ctx context.Context, sessionID string, memory []model.AdaptationRecord) error
	GetAdaptationMemory(ctx context.Context, sessionID string) ([]model.AdaptationRecord, bool, error)
}

// Resetter is an optional store capability used to wipe all persisted state.
type Resetter interface {
	Reset(ctx context.Context) error
}
