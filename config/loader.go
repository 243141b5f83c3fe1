package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a configuration was loaded from.
const SourceEmbedded = "embedded"

// SkipFunc is told about a search-path file that exists but could not be
// parsed. Load moves on to the next candidate.
type SkipFunc func(path string, err error)

// Load loads the game configuration.
// Search order: customPath -> ~/.adventurer/config.yaml -> ./configs/config.yaml -> embedded default
// Fields missing from a file keep their default values. skipped may be nil.
func Load(customPath string, skipped SkipFunc) (Config, string, error) {
	return load(customPath, userConfigPath("config.yaml"), filepath.Join("configs", "config.yaml"), skipped)
}

func load(customPath, userPath, localPath string, skipped SkipFunc) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userPath, localPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := parse(data)
		if err != nil {
			if skipped != nil {
				skipped(path, err)
			}
			continue
		}
		return cfg, path, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".adventurer", filename)
}
