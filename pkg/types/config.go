// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// ConvertConfig holds settings for the batch conversion stage.
type ConvertConfig struct {
	// InputDir is the directory scanned for source polar files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// Pattern is the glob matched against file names in InputDir
	// (default "*.plr").
	Pattern string `json:"pattern" yaml:"pattern"`

	// OutDirName is the fixed-name subdirectory of InputDir that receives
	// converted tables and the run log (default "converted").
	OutDirName string `json:"out_dir_name" yaml:"out_dir_name"`

	// LogName is the run log file name inside the output directory
	// (default "conversion.log").
	LogName string `json:"log_name" yaml:"log_name"`
}

// OutDir returns the full path of the conversion output directory.
func (c ConvertConfig) OutDir() string {
	return filepath.Join(c.InputDir, c.OutDirName)
}

// MergeConfig holds settings for the library merge stage.
type MergeConfig struct {
	// Dir is the directory of converted tables to merge, normally the
	// conversion stage's output directory.
	Dir string `json:"dir" yaml:"dir"`

	// LibraryName is the merged library file name written into Dir
	// (default "airfoil_library.dat").
	LibraryName string `json:"library_name" yaml:"library_name"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the SQLite database and exports.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxRuns is the default number of runs returned by queries (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Merge   MergeConfig   `json:"merge" yaml:"merge"`
	History HistoryConfig `json:"history" yaml:"history"`
}
