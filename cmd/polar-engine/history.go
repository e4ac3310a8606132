// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/polar-engine/internal/history"
	"github.com/pdiddy/polar-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query past conversion runs",
	Long: `History queries the local run-history database. Every conversion run
records its summary and per-file outcomes; list shows recent runs and export
writes the full history to YAML or JSON.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversion runs",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-30s  %-9s  %-6s  %-7s  %-6s\n",
		"Run", "Started", "Input", "Converted", "Warned", "Skipped", "Failed")
	for _, r := range runs {
		input := r.InputDir
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-30s  %-9d  %-6d  %-7d  %-6d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), input,
			r.Converted, r.Warned, r.Skipped, r.Failed)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := historyConfig(cmd)
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.HistoryDir, "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.HistoryDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// historyConfig resolves the history store settings. The default location
// follows the XDG data convention.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dir := setting(cmd, "history-dir", "history.history_dir", "")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".local", "share", "polar-engine")
	}
	return types.HistoryConfig{HistoryDir: dir}
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", "", "directory for the history database")

	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
