// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/internal/merge"
	"github.com/pdiddy/polar-engine/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [dir]",
	Short: "Merge converted tables into one library file",
	Long: `Merge combines the converted table files in dir/converted/ into a single
multi-table library file. The first table donates the header block, with its
table-count field rewritten to the number of contributing tables. Tables
appear in the library in directory-listing order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := mergeConfig(cmd, args)
	_, err := merge.Merge(cfg, format.Default(), os.Stdout)
	return err
}

// mergeConfig resolves the merge settings. The merge reads the same
// fixed-name subdirectory the conversion stage writes to.
func mergeConfig(cmd *cobra.Command, args []string) types.MergeConfig {
	inputDir := "."
	if len(args) > 0 {
		inputDir = args[0]
	}
	outDirName := setting(cmd, "out-dir", "convert.out_dir_name", "converted")
	return types.MergeConfig{
		Dir:         filepath.Join(inputDir, outDirName),
		LibraryName: setting(cmd, "library", "merge.library_name", "airfoil_library.dat"),
	}
}

func init() {
	mergeCmd.Flags().String("out-dir", "converted", "converted subdirectory name")
	mergeCmd.Flags().String("library", "airfoil_library.dat", "merged library file name")

	rootCmd.AddCommand(mergeCmd)
}
