// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format describes the fixed text layouts of source polar files and
// converted table files. All magic line offsets live in the Layout struct so
// a future format revision is a new Layout value, not a parsing change.
// Implements: prd001-conversion (source layout), prd002-merge (table layout);
//
//	docs/FORMATS § Source Polar, § Converted Table.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/polar-engine/pkg/types"
)

// Layout is the versioned format contract for one revision of the source and
// converted file layouts. Line numbers are 1-based, matching the format
// documentation.
type Layout struct {
	// HeaderLines is the fixed source header length; data starts on the
	// next line.
	HeaderLines int

	// LabelLine is the source header line carrying the POLARNAME tag.
	LabelLine int

	// ReynoldsLine is the source header line carrying the Reynolds number.
	ReynoldsLine int

	// ReynoldsToken is the zero-based whitespace-token index of the
	// Reynolds number on ReynoldsLine.
	ReynoldsToken int

	// MinColumns and MaxColumns bound the data-row width. Tokens beyond
	// MaxColumns are ignored; tables narrower than MinColumns are rejected.
	MinColumns int
	MaxColumns int

	// OutHeaderLines is the converted-table header length; the data block
	// starts on the next line.
	OutHeaderLines int

	// ConvertedExt is the file extension of converted tables.
	ConvertedExt string

	labelRe *regexp.Regexp
	countRe *regexp.Regexp
}

// Default returns the v1 layout shared by the conversion and merge stages.
func Default() Layout {
	return Layout{
		HeaderLines:    17,
		LabelLine:      10,
		ReynoldsLine:   14,
		ReynoldsToken:  1,
		MinColumns:     4,
		MaxColumns:     7,
		OutHeaderLines: 10,
		ConvertedExt:   ".dat",
		labelRe:        regexp.MustCompile(`POLARNAME\s*[-:=]?\s*(.+)`),
		countRe:        regexp.MustCompile(`^(\s*)(\d+)(\s+NumTabs\b.*)$`),
	}
}

// Label extracts the polar label from a header line. The second return is
// false when the line carries no POLARNAME tag or the tag has no value.
func (l Layout) Label(line string) (string, bool) {
	m := l.labelRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	label := strings.TrimSpace(m[1])
	return label, label != ""
}

// PatchCount rewrites the numeric value of a table-count header line,
// preserving its indentation and trailing text. The second return is false
// when the line is not a table-count line.
func (l Layout) PatchCount(line string, count int) (string, bool) {
	m := l.countRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1] + strconv.Itoa(count) + m[3], true
}

// DetectDelimiter inspects one sample data line and reports how its columns
// are separated: tab when any tab character appears, space otherwise. A
// caller that cannot read a sample line falls back to space.
func DetectDelimiter(sample string) types.DelimiterKind {
	if strings.ContainsRune(sample, '\t') {
		return types.DelimiterTab
	}
	return types.DelimiterSpace
}

// SplitColumns tokenizes a data line under the detected delimiter, collapsing
// runs of consecutive separators so "1.0   2.0" and "1.0 2.0" split the same.
// Tab-delimited lines additionally shed padding spaces around each field.
func SplitColumns(line string, delim types.DelimiterKind) []string {
	if delim == types.DelimiterTab {
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == '\t' })
		fields := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				fields = append(fields, p)
			}
		}
		return fields
	}
	return strings.Fields(line)
}
