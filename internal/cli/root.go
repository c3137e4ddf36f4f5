// Package cli implements the command-line interface for cubestate.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/config"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	cfg    config.Config
	logger *log.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubestate",
	Short: "3x3x3 cube state engine",
	Long: `cubestate - A virtual 3x3x3 twisty puzzle.

Apply moves in standard notation, print the resulting facelet string,
scramble, ask a solving service for a solution, play interactively in the
terminal or serve a cube to websocket clients.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubestate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.cubestate/journal.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}

	logger = newLogger(cfg.Log.Level)
	return nil
}

func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubestate",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

func openDB() (*storage.DB, error) {
	path := cfg.Storage.DBPath
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "journal.db")
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openJournal opens the move journal, or returns nil when journaling is
// disabled.
func openJournal() (*storage.DB, error) {
	if !cfg.Storage.Journal {
		return nil, nil
	}
	return openDB()
}
