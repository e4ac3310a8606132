// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/polar-engine/internal/aerodyn"
	"github.com/pdiddy/polar-engine/internal/batch"
	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/internal/history"
	"github.com/pdiddy/polar-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Convert source polar files into simulator tables",
	Long: `Convert scans a directory for source polar files and converts each into
a simulator table file in the converted/ subdirectory. Files are processed in
directory-listing order; one file's failure never stops the batch. Every
outcome is appended to the run log next to the converted tables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd, args)

	layout := format.Default()
	writer := aerodyn.NewWriter(layout, version)

	started := time.Now()
	summary, err := batch.Run(cfg, writer, layout, os.Stdout)
	if err != nil {
		return err
	}

	recordRun(cmd, cfg, started, summary)
	return nil
}

// recordRun persists the batch summary to the history store. History is
// observability only: a store failure warns and the conversion still counts.
func recordRun(cmd *cobra.Command, cfg types.ConvertConfig, started time.Time, summary types.BatchSummary) {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(context.Background(), cfg, started, summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run history: %v\n", err)
	}
}

// convertConfig resolves the conversion settings from args, flags, and the
// config file.
func convertConfig(cmd *cobra.Command, args []string) types.ConvertConfig {
	inputDir := "."
	if len(args) > 0 {
		inputDir = args[0]
	}
	return types.ConvertConfig{
		InputDir:   inputDir,
		Pattern:    setting(cmd, "pattern", "convert.pattern", "*.plr"),
		OutDirName: setting(cmd, "out-dir", "convert.out_dir_name", "converted"),
		LogName:    setting(cmd, "log-name", "convert.log_name", "conversion.log"),
	}
}

func init() {
	convertCmd.Flags().String("pattern", "*.plr", "glob matched against source file names")
	convertCmd.Flags().String("out-dir", "converted", "output subdirectory name")
	convertCmd.Flags().String("log-name", "conversion.log", "run log file name")

	rootCmd.AddCommand(convertCmd)
}
