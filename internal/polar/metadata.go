// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package polar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/polar-engine/internal/format"
)

// defaultReynolds is the fallback Reynolds number in millions when the header
// carries no usable value.
const defaultReynolds = 1.0

// ReynoldsResult carries either a header-derived Reynolds number or the
// fallback, with the reason the fallback was taken. Fallbacks are the common
// path for hand-edited headers and are never an error.
type ReynoldsResult struct {
	// Millions is the Reynolds number in millions.
	Millions float64

	// Fallback reports whether the default was used.
	Fallback bool

	// Reason explains the fallback. Empty when Fallback is false.
	Reason string
}

// LabelResult carries either a tagged polar label or the file-name fallback.
type LabelResult struct {
	Label    string
	Fallback bool
	Reason   string
}

// ExtractReynolds reads the Reynolds number from its fixed header line. The
// line is whitespace-split and the configured token parsed and scaled to
// millions. Missing line, missing token, or a non-numeric token all yield the
// 1.0-million default.
func ExtractReynolds(lines []string, layout format.Layout) ReynoldsResult {
	if len(lines) < layout.ReynoldsLine {
		return ReynoldsResult{
			Millions: defaultReynolds,
			Fallback: true,
			Reason:   fmt.Sprintf("header line %d missing", layout.ReynoldsLine),
		}
	}

	tokens := strings.Fields(lines[layout.ReynoldsLine-1])
	if len(tokens) <= layout.ReynoldsToken {
		return ReynoldsResult{
			Millions: defaultReynolds,
			Fallback: true,
			Reason:   fmt.Sprintf("line %d has %d token(s), need %d", layout.ReynoldsLine, len(tokens), layout.ReynoldsToken+1),
		}
	}

	v, err := strconv.ParseFloat(tokens[layout.ReynoldsToken], 64)
	if err != nil {
		return ReynoldsResult{
			Millions: defaultReynolds,
			Fallback: true,
			Reason:   fmt.Sprintf("token %q is not numeric", tokens[layout.ReynoldsToken]),
		}
	}

	return ReynoldsResult{Millions: v / 1e6}
}

// ExtractLabel reads the polar label from the POLARNAME header line, falling
// back to the source file's base name when the tag is absent or empty.
func ExtractLabel(lines []string, baseName string, layout format.Layout) LabelResult {
	if len(lines) < layout.LabelLine {
		return LabelResult{
			Label:    baseName,
			Fallback: true,
			Reason:   fmt.Sprintf("header line %d missing", layout.LabelLine),
		}
	}

	label, ok := layout.Label(lines[layout.LabelLine-1])
	if !ok {
		return LabelResult{
			Label:    baseName,
			Fallback: true,
			Reason:   "no POLARNAME tag",
		}
	}
	return LabelResult{Label: label}
}
