package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads configuration.
// Search order: customPath -> ~/.cubestate/config.yaml -> ./configs/cubestate.yaml -> defaults.
// Values missing from the file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "cubestate.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		loaded := Default()
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return loaded, loaded.Validate()
	}

	return cfg, nil
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if c.Scramble.Length <= 0 {
		return fmt.Errorf("scramble.length must be positive, got %d", c.Scramble.Length)
	}
	if c.Scramble.Delay < 0 {
		return fmt.Errorf("scramble.delay must not be negative, got %s", c.Scramble.Delay)
	}
	if c.Solver.Timeout <= 0 {
		return fmt.Errorf("solver.timeout must be positive, got %s", c.Solver.Timeout)
	}
	if c.Play.TurnDuration <= 0 {
		return fmt.Errorf("play.turn_duration must be positive, got %s", c.Play.TurnDuration)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// userConfigPath returns the path to a file in ~/.cubestate, or "" if
// the home directory is unknown.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubestate", name)
}

// Dir returns ~/.cubestate, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubestate")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}
