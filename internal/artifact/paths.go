// Package artifact caches generated move-generation magic tables and loaded
// NNUE network weights in a BadgerDB-backed store, so a cold process
// regenerates once and warm restarts read from disk instead of redoing
// expensive setup work.
package artifact

import (
	"os"
	"path/filepath"
)

const appName = "zugzwang"

// DefaultCacheDir returns the store location used when the configuration
// leaves the cache directory unset: the user's OS cache directory, or a
// directory under the working tree when the OS reports none.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
