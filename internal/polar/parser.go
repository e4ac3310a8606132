// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package polar parses and validates source polar files.
// Implements: prd001-conversion (parse, validate, metadata);
//
//	docs/FORMATS § Source Polar.
package polar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// ErrHeaderTooShort means the file ended before the fixed header did, so the
// data block cannot even be located.
var ErrHeaderTooShort = errors.New("file shorter than fixed header")

// ErrNoRows means the header was skipped but no numeric rows followed. This
// is distinct from a readable-but-empty table, which the source format does
// not produce.
var ErrNoRows = errors.New("no numeric data rows")

// Parse tokenizes the data block of a source polar file into a raw table.
// The fixed header is discarded unconditionally. Each data line contributes
// at most layout.MaxColumns fields; the first field that fails numeric
// parsing stops tokenization of the whole remaining stream, so a trailing
// footer never bleeds partial rows into the table.
func Parse(lines []string, delim types.DelimiterKind, layout format.Layout) (types.RawPolarTable, error) {
	if len(lines) <= layout.HeaderLines {
		return types.RawPolarTable{}, fmt.Errorf("%w: %d lines", ErrHeaderTooShort, len(lines))
	}

	var table types.RawPolarTable
scan:
	for _, line := range lines[layout.HeaderLines:] {
		fields := format.SplitColumns(line, delim)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > layout.MaxColumns {
			fields = fields[:layout.MaxColumns]
		}
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break scan
			}
			row = append(row, v)
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return types.RawPolarTable{}, ErrNoRows
	}
	return table, nil
}
