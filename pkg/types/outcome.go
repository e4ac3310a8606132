// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeCode classifies the result of processing one source polar file.
// Exactly one outcome is recorded per file and never mutated afterward.
type OutcomeCode string

const (
	// OutcomeSuccess means the file was converted with no reservations.
	OutcomeSuccess OutcomeCode = "success"

	// OutcomeSkippedUnreadable means the file could not be read, was shorter
	// than the fixed header, or yielded no numeric rows.
	OutcomeSkippedUnreadable OutcomeCode = "skipped_unreadable"

	// OutcomeSkippedInsufficientColumns means the table had fewer than four
	// columns or its rows disagreed on width.
	OutcomeSkippedInsufficientColumns OutcomeCode = "skipped_insufficient_columns"

	// OutcomeSkippedNonFinite means a NaN or infinite value appeared in one
	// of the first four columns.
	OutcomeSkippedNonFinite OutcomeCode = "skipped_non_finite"

	// OutcomeWrittenWithWarning means the file was converted but its
	// angle-of-attack column does not cover the full [-180, 180] range.
	OutcomeWrittenWithWarning OutcomeCode = "written_with_warning"

	// OutcomeFailedExternalWrite means the coefficient writer failed for this
	// file. The failure never propagates past the file boundary.
	OutcomeFailedExternalWrite OutcomeCode = "failed_external_write"
)

// Converted reports whether the outcome produced a converted output file.
func (c OutcomeCode) Converted() bool {
	return c == OutcomeSuccess || c == OutcomeWrittenWithWarning
}

// FileResult records the outcome of one source file in a batch run.
type FileResult struct {
	// File is the base name of the source polar file.
	File string `json:"file" yaml:"file"`

	// Outcome classifies what happened to the file.
	Outcome OutcomeCode `json:"outcome" yaml:"outcome"`

	// Label is the polar label used for the converted table, when one was
	// written.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Reynolds is the extracted Reynolds number in millions, when one was
	// written.
	Reynolds float64 `json:"reynolds,omitempty" yaml:"reynolds,omitempty"`

	// AOAMin and AOAMax are the observed angle-of-attack bounds in degrees.
	// Populated for converted files; meaningful for warnings, where they
	// report the non-covering range.
	AOAMin float64 `json:"aoa_min,omitempty" yaml:"aoa_min,omitempty"`
	AOAMax float64 `json:"aoa_max,omitempty" yaml:"aoa_max,omitempty"`

	// Detail carries a human-readable reason for skips, warnings, and
	// fallback metadata defaults. Empty on a clean success.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// BatchSummary aggregates the per-file results of one conversion run.
type BatchSummary struct {
	// Converted counts files written without reservation.
	Converted int `json:"converted" yaml:"converted"`

	// Warned counts files written with an AOA-coverage warning.
	Warned int `json:"warned" yaml:"warned"`

	// Skipped counts files excluded before the writer ran.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Failed counts files rejected by the coefficient writer.
	Failed int `json:"failed" yaml:"failed"`

	// Results holds the per-file outcomes in directory-listing order.
	Results []FileResult `json:"results" yaml:"results"`
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Converted + s.Warned + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed in the writer.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Add folds one file result into the summary counts.
func (s *BatchSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeSuccess:
		s.Converted++
	case OutcomeWrittenWithWarning:
		s.Warned++
	case OutcomeFailedExternalWrite:
		s.Failed++
	default:
		s.Skipped++
	}
}
