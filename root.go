package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"stickies/internal/app"
	"stickies/internal/config"
	"stickies/internal/service"
)

var (
	verbose    bool
	configPath string
)

// rootCmd opens the desktop board when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "stickies",
	Short: "An infinite canvas of sticky notes",
	Long: `Stickies is a desktop board of markdown sticky notes on a snapping grid.
Run without arguments to open the board, or use a subcommand to work with
the saved board from the terminal.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runGUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/stickies/config.yaml)")
}

// openCore loads the config and opens the saved board, exiting on failure.
func openCore(emitter service.EventEmitter) *app.Core {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Error loading config", err)
	}
	core, err := app.Open(cfg, emitter, slog.Default())
	if err != nil {
		fatal("Error opening board", err)
	}
	return core
}
