package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stickies/internal/app"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the board to AI agents over MCP on stdio",
	Long: `Runs a standalone MCP server on stdin/stdout. Deleting and importing wait
for approval from a running Stickies window.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		core := openCore(nil)
		defer core.Close()

		if err := app.ServeMCP(core, slog.Default()); err != nil {
			fatal("MCP server error", err)
		}
	},
}

var backupDaemon bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a backup of the board now, or on the configured schedule with --daemon",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		core := openCore(nil)
		defer core.Close()
		backups := core.Backups()

		if !backupDaemon {
			path, err := backups.RunOnce(context.Background())
			if err != nil {
				fatal("Error writing backup", err)
			}
			fmt.Printf("Backup written: %s\n", path)
			return
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := backups.Start(ctx, core.Config.Backup.Schedule); err != nil {
			fatal("Error scheduling backups", err)
		}
		<-ctx.Done()
		backups.Stop()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd, backupCmd)
	backupCmd.Flags().BoolVar(&backupDaemon, "daemon", false, "Keep running and back up on the configured schedule")
}
