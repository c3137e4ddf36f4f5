// Package config loads cubestate settings from YAML.
package config

import (
	"time"
)

// Config holds application settings.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Scramble ScrambleConfig `yaml:"scramble"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Play     PlayConfig     `yaml:"play"`
}

// SolverConfig points at the external solving service.
type SolverConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScrambleConfig controls generated scrambles.
type ScrambleConfig struct {
	Length int           `yaml:"length"`
	Delay  time.Duration `yaml:"delay"`
}

// StorageConfig locates the move journal. An empty DBPath uses the
// default under the home directory.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Journal bool   `yaml:"journal"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures the websocket observer server.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// PlayConfig configures the interactive TUI.
type PlayConfig struct {
	TurnDuration time.Duration `yaml:"turn_duration"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			URL:     "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Scramble: ScrambleConfig{
			Length: 25,
			Delay:  210 * time.Millisecond,
		},
		Storage: StorageConfig{
			Journal: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address: ":8081",
		},
		Play: PlayConfig{
			TurnDuration: 200 * time.Millisecond,
		},
	}
}
