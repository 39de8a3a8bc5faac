package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	path = configDir(path)

	configFs := afero.NewBasePathFs(afero.NewOsFs(), path)
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Join(path, ConfigurationName), err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	out.configFs = configFs
	return &out, nil
}

// LoadOrDefault loads the configuration at path, falling back to the
// built-in default if no configuration file exists there.
func LoadOrDefault(path string, logger *log.Logger) (*Configuration, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No configuration in %q, using defaults. Run init to create one.", configDir(path))
		return Default(configDir(path)), nil
	}
	return cfg, err
}

// Initialize writes the default configuration into dir and returns it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := afero.NewOsFs().MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	dirFs := afero.NewBasePathFs(afero.NewOsFs(), dir)

	exists, err := afero.Exists(dirFs, ConfigurationName)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, not overwriting", filepath.Join(dir, ConfigurationName))
	default:
		logger.Printf("Writing %s", filepath.Join(dir, ConfigurationName))
		if err := afero.WriteFile(dirFs, ConfigurationName, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	}

	return Load(dir)
}
