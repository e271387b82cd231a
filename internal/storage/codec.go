package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"phenos/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeProfile(p model.NeurodivergenceProfile) ([]byte, error) {
	return json.Marshal(p)
}

func DecodeProfile(data []byte) (model.NeurodivergenceProfile, error) {
	var profile model.NeurodivergenceProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.NeurodivergenceProfile{}, err
	}
	if err := checkVersion(profile.VersionedRecord); err != nil {
		return model.NeurodivergenceProfile{}, err
	}
	return profile, nil
}

type observationLogRecord struct {
	model.VersionedRecord
	Observations []model.Observation `json:"observations"`
}

func EncodeObservations(log []model.Observation) ([]byte, error) {
	return json.Marshal(observationLogRecord{
		VersionedRecord: currentVersion(),
		Observations:    log,
	})
}

func DecodeObservations(data []byte) ([]model.Observation, error) {
	var record observationLogRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return nil, err
	}
	return record.Observations, nil
}

type successIndexRecord struct {
	model.VersionedRecord
	Counts []model.SuccessCount `json:"counts"`
}

func EncodeSuccessIndex(counts []model.SuccessCount) ([]byte, error) {
	return json.Marshal(successIndexRecord{
		VersionedRecord: currentVersion(),
		Counts:          counts,
	})
}

func DecodeSuccessIndex(data []byte) ([]model.SuccessCount, error) {
	var record successIndexRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return nil, err
	}
	return record.Counts, nil
}

type adaptationMemoryRecord struct {
	model.VersionedRecord
	Memory []model.AdaptationRecord `json:"memory"`
}

func EncodeAdaptationMemory(memory []model.AdaptationRecord) ([]byte, error) {
	return json.Marshal(adaptationMemoryRecord{
		VersionedRecord: currentVersion(),
		Memory:          memory,
	})
}

func DecodeAdaptationMemory(data []byte) ([]model.AdaptationRecord, error) {
	var record adaptationMemoryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return nil, err
	}
	return record.Memory, nil
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func checkVersion(record model.VersionedRecord) error {
	if record.SchemaVersion != CurrentSchemaVersion || record.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, record.SchemaVersion, record.CodecVersion)
	}
	return nil
}
