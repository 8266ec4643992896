package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// UserConfigFile is looked up under ~/.cuberunner.
	UserConfigFile = "config.yaml"
	// LocalConfigFile is looked up under ./configs.
	LocalConfigFile = "cuberunner.yaml"
)

// Load loads the cube runner configuration.
// Search order: customPath -> ~/.cuberunner/config.yaml ->
// ./configs/cuberunner.yaml -> embedded default.
// Only an explicit customPath can fail; the search path falls back silently.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(UserConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", LocalConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil // Fallback to hardcoded if embed fails
}

// parse decodes YAML over the built-in defaults, so partial files only
// override the keys they name, and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
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
	return filepath.Join(home, ".cuberunner", filename)
}
