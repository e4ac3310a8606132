// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package polar

import (
	"fmt"
	"math"

	"github.com/pdiddy/polar-engine/pkg/types"
)

// Full AOA coverage means the polar spans at least one full revolution.
const (
	aoaCoverMin = -180.0
	aoaCoverMax = 180.0
)

// Verdict is the validation decision for one raw table. When the outcome is
// a skip, Table is nil; otherwise Table is the narrowed 4-column polar and
// AOAMin/AOAMax are its observed angle-of-attack bounds.
type Verdict struct {
	Outcome types.OutcomeCode
	Table   types.PolarTable
	AOAMin  float64
	AOAMax  float64

	// Detail explains skips and warnings.
	Detail string
}

// Validate checks a raw table and narrows it for the coefficient writer.
// Checks run in order: uniform width of at least four columns, finiteness of
// the first four columns, then angle-of-attack coverage. Coverage shortfall
// is a warning, not a rejection.
func Validate(raw types.RawPolarTable) Verdict {
	width := raw.Width()
	if width < 0 {
		return Verdict{
			Outcome: types.OutcomeSkippedInsufficientColumns,
			Detail:  "rows disagree on column count",
		}
	}
	if width < 4 {
		return Verdict{
			Outcome: types.OutcomeSkippedInsufficientColumns,
			Detail:  fmt.Sprintf("%d column(s), need 4", width),
		}
	}

	table := make(types.PolarTable, len(raw.Rows))
	aoaMin, aoaMax := math.Inf(1), math.Inf(-1)
	for i, row := range raw.Rows {
		for col := 0; col < 4; col++ {
			if math.IsNaN(row[col]) || math.IsInf(row[col], 0) {
				return Verdict{
					Outcome: types.OutcomeSkippedNonFinite,
					Detail:  fmt.Sprintf("non-finite value in row %d, column %d", i+1, col+1),
				}
			}
		}
		table[i] = types.PolarPoint{AOA: row[0], CL: row[1], CD: row[2], CM: row[3]}
		aoaMin = math.Min(aoaMin, row[0])
		aoaMax = math.Max(aoaMax, row[0])
	}

	v := Verdict{Outcome: types.OutcomeSuccess, Table: table, AOAMin: aoaMin, AOAMax: aoaMax}
	if aoaMin > aoaCoverMin || aoaMax < aoaCoverMax {
		v.Outcome = types.OutcomeWrittenWithWarning
		v.Detail = fmt.Sprintf("AOA range [%.1f, %.1f] does not cover [-180, 180]", aoaMin, aoaMax)
	}
	return v
}
