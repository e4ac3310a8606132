// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives per-file conversion of a directory of source polars.
// One file's failure never affects another's processing; every per-file error
// is absorbed at the file boundary and recorded as an outcome. Only
// directory-level problems (no matching files, unopenable log) abort a run.
// Implements: prd001-conversion (orchestration, run log);
//
//	docs/ARCHITECTURE § Conversion.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/internal/polar"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// TableWriter is the collaborator that fits coefficients from a validated
// polar and writes the converted table file.
type TableWriter interface {
	ComputeAndWrite(table types.PolarTable, path, label string, reynolds float64) (types.Coefficients, error)
}

// Run converts every file in cfg.InputDir matching cfg.Pattern, in
// directory-listing order, writing converted tables and the run log into the
// output subdirectory. Per-file progress goes to w. A run with zero matching
// files is an error; individual file outcomes are not.
func Run(cfg types.ConvertConfig, writer TableWriter, layout format.Layout, w io.Writer) (types.BatchSummary, error) {
	inputs, err := filepath.Glob(filepath.Join(cfg.InputDir, cfg.Pattern))
	if err != nil {
		return types.BatchSummary{}, fmt.Errorf("bad pattern %q: %w", cfg.Pattern, err)
	}
	if len(inputs) == 0 {
		return types.BatchSummary{}, fmt.Errorf("no files matching %s in %s", cfg.Pattern, cfg.InputDir)
	}

	outDir := cfg.OutDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	log, err := OpenRunLog(filepath.Join(outDir, cfg.LogName))
	if err != nil {
		return types.BatchSummary{}, err
	}
	defer log.Close()
	log.Eventf("run started: %d file(s) matching %s in %s", len(inputs), cfg.Pattern, cfg.InputDir)

	var summary types.BatchSummary
	for _, path := range inputs {
		res := ConvertFile(path, outDir, writer, layout)
		summary.Add(res)
		log.Result(res)
		fmt.Fprintln(w, progressLine(res))
	}

	log.Eventf("run finished: %d converted, %d warned, %d skipped, %d failed",
		summary.Converted, summary.Warned, summary.Skipped, summary.Failed)

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d with warnings, %d skipped, %d failed (total: %d)\n",
		summary.Converted, summary.Warned, summary.Skipped, summary.Failed, summary.Total())
	fmt.Fprintf(w, "Log written to %s\n", log.Path())
	return summary, nil
}

// ConvertFile processes one source polar through the per-file pipeline:
// detect delimiter, parse, validate, extract metadata, write. Every failure
// is converted into an outcome; ConvertFile never returns an error.
func ConvertFile(path, outDir string, writer TableWriter, layout format.Layout) types.FileResult {
	name := filepath.Base(path)
	res := types.FileResult{File: name}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Outcome = types.OutcomeSkippedUnreadable
		res.Detail = err.Error()
		return res
	}
	lines := splitLines(string(data))

	// Detecting: the sample is the first data line. A file too short to
	// have one falls back to space; the parser rejects it just after.
	delim := types.DelimiterSpace
	if len(lines) > layout.HeaderLines {
		delim = format.DetectDelimiter(lines[layout.HeaderLines])
	}

	// Parsing.
	raw, err := polar.Parse(lines, delim, layout)
	if err != nil {
		res.Outcome = types.OutcomeSkippedUnreadable
		res.Detail = err.Error()
		return res
	}

	// Validating.
	verdict := polar.Validate(raw)
	if !verdict.Outcome.Converted() {
		res.Outcome = verdict.Outcome
		res.Detail = verdict.Detail
		return res
	}
	res.AOAMin, res.AOAMax = verdict.AOAMin, verdict.AOAMax

	// ExtractingMetadata: both extractions fall back rather than fail.
	base := strings.TrimSuffix(name, filepath.Ext(name))
	reynolds := polar.ExtractReynolds(lines, layout)
	label := polar.ExtractLabel(lines, base, layout)
	res.Reynolds = reynolds.Millions
	res.Label = label.Label

	var notes []string
	if reynolds.Fallback {
		notes = append(notes, "Re defaulted: "+reynolds.Reason)
	}
	if label.Fallback {
		notes = append(notes, "label defaulted: "+label.Reason)
	}
	if verdict.Detail != "" {
		notes = append(notes, verdict.Detail)
	}

	// Writing: the writer is an external collaborator, so its failure is
	// caught here and charged to this file only.
	outPath := filepath.Join(outDir, base+layout.ConvertedExt)
	if _, err := writer.ComputeAndWrite(verdict.Table, outPath, label.Label, reynolds.Millions); err != nil {
		res.Outcome = types.OutcomeFailedExternalWrite
		res.Detail = err.Error()
		return res
	}

	res.Outcome = verdict.Outcome
	res.Detail = strings.Join(notes, "; ")
	return res
}

func progressLine(res types.FileResult) string {
	switch res.Outcome {
	case types.OutcomeSuccess:
		return fmt.Sprintf("converted: %s (%s, Re %.2fM)", res.File, res.Label, res.Reynolds)
	case types.OutcomeWrittenWithWarning:
		return fmt.Sprintf("converted: %s (warning: %s)", res.File, res.Detail)
	case types.OutcomeFailedExternalWrite:
		return fmt.Sprintf("failed:    %s (%s)", res.File, res.Detail)
	default:
		return fmt.Sprintf("skipped:   %s (%s)", res.File, res.Detail)
	}
}

// splitLines splits on \n and sheds a trailing \r per line, so CRLF sources
// parse identically to LF sources. A trailing final newline does not yield a
// phantom empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
