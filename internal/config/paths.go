package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

// HomeDir returns the keysweep data directory.
// KEYSWEEP_HOME overrides the default of ~/.keysweep.
func HomeDir() (string, error) {
	if home := os.Getenv(constants.HomeEnvVar); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(userHome, constants.KeysweepHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(constants.KeysweepHome, constants.ConfigFileName)
}

// FileExists returns true if the file at path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
