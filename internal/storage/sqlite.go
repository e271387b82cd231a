//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"phenos/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, profile model.NeurodivergenceProfile) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeProfile(profile)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO profiles (individual_id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(individual_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, profile.IndividualID, profile.SchemaVersion, profile.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetProfile(ctx context.Context, individualID string) (model.NeurodivergenceProfile, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.NeurodivergenceProfile{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM profiles WHERE individual_id = ?`, individualID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.NeurodivergenceProfile{}, false, nil
		}
		return model.NeurodivergenceProfile{}, false, err
	}

	profile, err := DecodeProfile(payload)
	if err != nil {
		return model.NeurodivergenceProfile{}, false, fmt.Errorf("decode profile %s: %w", individualID, err)
	}
	return profile, true, nil
}

func (s *SQLiteStore) SaveObservations(ctx context.Context, sessionID string, log []model.Observation) error {
	payload, err := EncodeObservations(log)
	if err != nil {
		return err
	}
	return s.saveSessionPayload(ctx, "observations", sessionID, payload)
}

func (s *SQLiteStore) GetObservations(ctx context.Context, sessionID string) ([]model.Observation, bool, error) {
	payload, ok, err := s.getSessionPayload(ctx, "observations", sessionID)
	if err != nil || !ok {
		return nil, ok, err
	}
	log, err := DecodeObservations(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode observations %s: %w", sessionID, err)
	}
	return log, true, nil
}

func (s *SQLiteStore) SaveSuccessIndex(ctx context.Context, sessionID string, counts []model.SuccessCount) error {
	payload, err := EncodeSuccessIndex(counts)
	if err != nil {
		return err
	}
	return s.saveSessionPayload(ctx, "success_index", sessionID, payload)
}

func (s *SQLiteStore) GetSuccessIndex(ctx context.Context, sessionID string) ([]model.SuccessCount, bool, error) {
	payload, ok, err := s.getSessionPayload(ctx, "success_index", sessionID)
	if err != nil || !ok {
		return nil, ok, err
	}
	counts, err := DecodeSuccessIndex(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode success index %s: %w", sessionID, err)
	}
	return counts, true, nil
}

func (s *SQLiteStore) SaveAdaptationMemory(ctx context.Context, sessionID string, memory []model.AdaptationRecord) error {
	payload, err := EncodeAdaptationMemory(memory)
	if err != nil {
		return err
	}
	return s.saveSessionPayload(ctx, "adaptation_memory", sessionID, payload)
}

func (s *SQLiteStore) GetAdaptationMemory(ctx context.Context, sessionID string) ([]model.AdaptationRecord, bool, error) {
	payload, ok, err := s.getSessionPayload(ctx, "adaptation_memory", sessionID)
	if err != nil || !ok {
		return nil, ok, err
	}
	memory, err := DecodeAdaptationMemory(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode adaptation memory %s: %w", sessionID, err)
	}
	return memory, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) saveSessionPayload(ctx context.Context, table, sessionID string, payload []byte) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (session_id, payload)
		VALUES (?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			payload = excluded.payload
	`, table), sessionID, payload)
	return err
}

func (s *SQLiteStore) getSessionPayload(ctx context.Context, table, sessionID string) ([]byte, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, fmt.Sprintf(`SELECT payload FROM %s WHERE session_id = ?`, table), sessionID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			individual_id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS observations (
			session_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS success_index (
			session_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS adaptation_memory (
			session_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
