// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/polar-engine/internal/aerodyn"
	"github.com/pdiddy/polar-engine/internal/batch"
	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/internal/merge"
	"github.com/pdiddy/polar-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Convert a directory of polars and merge the results",
	Long: `Run executes the full pipeline: convert every matching source polar in
the directory, then merge the converted tables into the library file. The
merge consumes exactly what the conversion stage produced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd, args)

	layout := format.Default()
	writer := aerodyn.NewWriter(layout, version)

	started := time.Now()
	summary, err := batch.Run(cfg, writer, layout, os.Stdout)
	if err != nil {
		return err
	}
	recordRun(cmd, cfg, started, summary)

	mergeCfg := types.MergeConfig{
		Dir:         filepath.Join(cfg.InputDir, cfg.OutDirName),
		LibraryName: setting(cmd, "library", "merge.library_name", "airfoil_library.dat"),
	}
	_, err = merge.Merge(mergeCfg, layout, os.Stdout)
	return err
}

func init() {
	runCmd.Flags().String("pattern", "*.plr", "glob matched against source file names")
	runCmd.Flags().String("out-dir", "converted", "output subdirectory name")
	runCmd.Flags().String("log-name", "conversion.log", "run log file name")
	runCmd.Flags().String("library", "airfoil_library.dat", "merged library file name")

	rootCmd.AddCommand(runCmd)
}
