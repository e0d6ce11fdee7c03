package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/byterings/gus/internal/platform"
	"github.com/byterings/gus/internal/profile"
	"github.com/moby/sys/atomicwriter"
)

const (
	ConfigFileName = "config"
)

// GetConfigDir returns the path to the gus config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, platform.GetConfigDirName()), nil
}

// GetConfigPath returns the path to the profile store
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// ResolvePath returns override when set, otherwise the default store path
func ResolvePath(override string) (string, error) {
	if override != "" {
		return platform.ExpandTilde(override)
	}
	return GetConfigPath()
}

// ConfigExists checks if the profile store exists at path
func ConfigExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Init creates the store directory and an empty store at path.
// It reports whether a new file was created.
func Init(path string) (bool, error) {
	exists, err := ConfigExists(path)
	if err != nil {
		return false, fmt.Errorf("failed to check config: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := platform.OpenFileSecure(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	return true, nil
}

// LoadCatalog reads the profile store, creating an empty one if absent
func LoadCatalog(path string) (*profile.Catalog, error) {
	if _, err := Init(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cat, err := profile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cat, nil
}

// SaveCatalog writes the catalog back to the profile store
func SaveCatalog(path string, cat *profile.Catalog) error {
	data, err := cat.Encode()
	if err != nil {
		return err
	}

	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicwriter.WriteFile(path, data, platform.SecureFileMode()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
