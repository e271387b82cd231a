package storage

import "fmt"

// NewStore resolves a checkpoint store from the configured backend kind
// (PHENOS_STORE). The empty kind means memory, matching the env default.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported checkpoint store %q (want memory or sqlite)", kind)
	}
}

// CloseIfSupported closes stores that hold external resources; the memory
// store has none and is left untouched.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
