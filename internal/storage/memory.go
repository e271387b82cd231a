package storage

import (
	"context"
	"sync"

	"phenos/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	profiles    map[string]model.NeurodivergenceProfile
	logs        map[string][]model.Observation
	indexes     map[string][]model.SuccessCount
	memories    map[string][]model.AdaptationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.profiles = make(map[string]model.NeurodivergenceProfile)
	s.logs = make(map[string][]model.Observation)
	s.indexes = make(map[string][]model.SuccessCount)
	s.memories = make(map[string][]model.AdaptationRecord)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveProfile(_ context.Context, profile model.NeurodivergenceProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.IndividualID] = profile
	return nil
}

func (s *MemoryStore) GetProfile(_ context.Context, individualID string) (model.NeurodivergenceProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[individualID]
	return profile, ok, nil
}

func (s *MemoryStore) SaveObservations(_ context.Context, sessionID string, log []model.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.Observation, len(log))
	copy(copied, log)
	s.logs[sessionID] = copied
	return nil
}

func (s *MemoryStore) GetObservations(_ context.Context, sessionID string) ([]model.Observation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[sessionID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.Observation, len(log))
	copy(copied, log)
	return copied, true, nil
}

func (s *MemoryStore) SaveSuccessIndex(_ context.Context, sessionID string, counts []model.SuccessCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.SuccessCount, len(counts))
	copy(copied, counts)
	s.indexes[sessionID] = copied
	return nil
}

func (s *MemoryStore) GetSuccessIndex(_ context.Context, sessionID string) ([]model.SuccessCount, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts, ok := s.indexes[sessionID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.SuccessCount, len(counts))
	copy(copied, counts)
	return copied, true, nil
}

func (s *MemoryStore) SaveAdaptationMemory(_ context.Context, sessionID string, memory []model.AdaptationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.AdaptationRecord, len(memory))
	copy(copied, memory)
	s.memories[sessionID] = copied
	return nil
}

func (s *MemoryStore) GetAdaptationMemory(_ context.Context, sessionID string) ([]model.AdaptationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memory, ok := s.memories[sessionID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.AdaptationRecord, len(memory))
	copy(copied, memory)
	return copied, true, nil
}
