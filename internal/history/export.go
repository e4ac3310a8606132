// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/polar-engine/pkg/types"
)

// ExportEntry holds one run with its per-file outcomes for export.
type ExportEntry struct {
	Run      RunRecord          `json:"run" yaml:"run"`
	Outcomes []types.FileResult `json:"outcomes" yaml:"outcomes"`
}

const exportLimit = 100000

// ExportYAML writes the run history to historyDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.historyDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the run history to historyDir/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(s.historyDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	runs, err := s.ListRuns(ctx, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, run := range runs {
		outcomes, err := s.RunOutcomes(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("querying outcomes for run %d: %w", run.ID, err)
		}
		entries[i] = ExportEntry{Run: run, Outcomes: outcomes}
	}
	return entries, nil
}
