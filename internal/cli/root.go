// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "3x3x3 twisty puzzle simulator",
	Long: `cubesim - A slice-rotation engine for a 3x3x3 twisty puzzle.

Play in the terminal, mirror a GoCube smart cube over Bluetooth, run moves
headless, or serve the tick stream to websocket clients.`,
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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubesim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesim/cubesim.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	logger.Debug("config loaded", "path", path, "db", cfg.DBPath)
	return nil
}

// openDB opens the database named by --db or the config file.
func openDB() (*storage.DB, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// puzzleOptions turns the loaded config into puzzle options.
func puzzleOptions(extra ...cubesim.Option) []cubesim.Option {
	opts := []cubesim.Option{
		cubesim.WithRotateSpeed(float32(cfg.RotateSpeed)),
		cubesim.WithDragThreshold(float32(cfg.DragThreshold)),
		cubesim.WithScrambleLength(cfg.ScrambleLength),
		cubesim.WithLogger(logger),
	}
	return append(opts, extra...)
}

// frameDelta is the seconds per tick at the configured tick rate.
func frameDelta() float32 {
	return 1 / float32(cfg.TickRateHz)
}
