package learning

import (
	"encoding/json"
	"fmt"

	"phenos/internal/model"
)

// CanonicalKey renders a deterministic, order-independent fingerprint of a UI
// state snapshot. Two snapshots holding the same key/value pairs produce the
// same key regardless of construction order, which is what lets the success
// index merge equivalent states. encoding/json sorts map keys, so the plain
// marshal is already canonical.
func CanonicalKey(state model.UIState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("canonicalize ui state: %w", err)
	}
	return string(data), nil
}

// DecodeKey reconstructs the state snapshot a canonical key was built from.
func DecodeKey(key string) (model.UIState, error) {
	var state model.UIState
	if err := json.Unmarshal([]byte(key), &state); err != nil {
		return nil, fmt.Errorf("decode ui state key: %w", err)
	}
	return state, nil
}
