package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes the default configuration unless a file is
// already present. It reports whether a file was created. An existing file
// is loaded to make sure it is usable.
func EnsureConfigExists(homeDir string) (bool, error) {
	configPath := GetConfigPath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		if _, err := Load(homeDir); err != nil {
			return false, err
		}
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: check %s: %w", configPath, err)
	}

	if err := Default().Save(homeDir); err != nil {
		return false, err
	}
	return true, nil
}
