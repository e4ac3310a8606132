// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package polar

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// sourceLines builds a minimal source polar: a 17-line header followed by the
// given data lines. Header lines carry the POLARNAME and Reynolds fields at
// their fixed positions.
func sourceLines(data ...string) []string {
	lines := make([]string, 17, 17+len(data))
	for i := range lines {
		lines[i] = fmt.Sprintf("header line %d", i+1)
	}
	lines[9] = "POLARNAME - NACA0012"
	lines[13] = "1 2500000"
	return append(lines, data...)
}

func TestParse(t *testing.T) {
	layout := format.Default()

	tests := []struct {
		name     string
		lines    []string
		delim    types.DelimiterKind
		wantRows [][]float64
		wantErr  error
	}{
		{
			name:  "space delimited rows",
			lines: sourceLines("-180.0 0.0 0.02 0.0", "0.0   0.5 0.01 -0.05", "180.0 0.0 0.02 0.0"),
			delim: types.DelimiterSpace,
			wantRows: [][]float64{
				{-180, 0, 0.02, 0},
				{0, 0.5, 0.01, -0.05},
				{180, 0, 0.02, 0},
			},
		},
		{
			name:  "tab delimited rows",
			lines: sourceLines("-10.0\t-0.8\t0.015\t0.01", "10.0\t1.2\t0.012\t-0.02"),
			delim: types.DelimiterTab,
			wantRows: [][]float64{
				{-10, -0.8, 0.015, 0.01},
				{10, 1.2, 0.012, -0.02},
			},
		},
		{
			name:  "extra columns truncated to seven",
			lines: sourceLines("0 1 2 3 4 5 6 7 8"),
			delim: types.DelimiterSpace,
			wantRows: [][]float64{
				{0, 1, 2, 3, 4, 5, 6},
			},
		},
		{
			name:  "parse failure stops remaining stream",
			lines: sourceLines("0 0.5 0.01 0.0", "END OF TABLE", "10 0.9 0.01 0.0"),
			delim: types.DelimiterSpace,
			wantRows: [][]float64{
				{0, 0.5, 0.01, 0},
			},
		},
		{
			name:  "blank lines between rows are not rows",
			lines: sourceLines("0 0.5 0.01 0.0", "", "10 0.9 0.01 0.0"),
			delim: types.DelimiterSpace,
			wantRows: [][]float64{
				{0, 0.5, 0.01, 0},
				{10, 0.9, 0.01, 0},
			},
		},
		{
			name:    "file shorter than header",
			lines:   []string{"only", "five", "header", "lines", "here"},
			delim:   types.DelimiterSpace,
			wantErr: ErrHeaderTooShort,
		},
		{
			name:    "header but no numeric rows",
			lines:   sourceLines("no numbers at all"),
			delim:   types.DelimiterSpace,
			wantErr: ErrNoRows,
		},
		{
			name:    "header followed by nothing",
			lines:   sourceLines(),
			delim:   types.DelimiterSpace,
			wantErr: ErrHeaderTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.lines, tt.delim, layout)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(table.Rows) != len(tt.wantRows) {
				t.Fatalf("rows = %d, want %d", len(table.Rows), len(tt.wantRows))
			}
			for i, row := range table.Rows {
				if len(row) != len(tt.wantRows[i]) {
					t.Fatalf("row %d width = %d, want %d", i, len(row), len(tt.wantRows[i]))
				}
				for j, v := range row {
					if v != tt.wantRows[i][j] {
						t.Errorf("row %d col %d = %v, want %v", i, j, v, tt.wantRows[i][j])
					}
				}
			}
		})
	}
}

func TestExtractReynolds(t *testing.T) {
	layout := format.Default()

	tests := []struct {
		name         string
		line14       string
		want         float64
		wantFallback bool
	}{
		{"second token in millions", "1 2500000 foo", 2.5, false},
		{"single token", "2500000", 1.0, true},
		{"non-numeric second token", "1 banana", 1.0, true},
		{"empty line", "", 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := sourceLines("0 0.5 0.01 0.0")
			lines[13] = tt.line14

			got := ExtractReynolds(lines, layout)
			if got.Millions != tt.want {
				t.Errorf("Millions = %v, want %v", got.Millions, tt.want)
			}
			if got.Fallback != tt.wantFallback {
				t.Errorf("Fallback = %v, want %v", got.Fallback, tt.wantFallback)
			}
			if got.Fallback && got.Reason == "" {
				t.Error("fallback result should carry a reason")
			}
		})
	}

	t.Run("header line missing entirely", func(t *testing.T) {
		got := ExtractReynolds([]string{"one line"}, layout)
		if got.Millions != 1.0 || !got.Fallback {
			t.Errorf("got %+v, want 1.0 fallback", got)
		}
	})
}

func TestExtractLabel(t *testing.T) {
	layout := format.Default()

	tests := []struct {
		name         string
		line10       string
		want         string
		wantFallback bool
	}{
		{"tagged label", "  POLARNAME  -  NACA0012  ", "NACA0012", false},
		{"no tag falls back to base name", "just a comment", "polar_a", true},
		{"empty line falls back", "", "polar_a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := sourceLines("0 0.5 0.01 0.0")
			lines[9] = tt.line10

			got := ExtractLabel(lines, "polar_a", layout)
			if got.Label != tt.want {
				t.Errorf("Label = %q, want %q", got.Label, tt.want)
			}
			if got.Fallback != tt.wantFallback {
				t.Errorf("Fallback = %v, want %v", got.Fallback, tt.wantFallback)
			}
		})
	}
}
