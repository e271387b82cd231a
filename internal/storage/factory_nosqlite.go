//go:build !sqlite

package storage

import "errors"

func newSQLiteStore(_ string) (Store, error) {
	return nil, errors.New("sqlite checkpoint store unavailable in this build; rebuild with -tags sqlite")
}
