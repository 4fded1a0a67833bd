package config

import (
	"errors"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns the path to the user's config file under dataDir,
// writing the built-in defaults there on first run.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := SaveAtomic(userPath, Default()); err != nil {
		return "", err
	}
	return userPath, nil
}
