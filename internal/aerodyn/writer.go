// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aerodyn fits aerodynamic parameters from a validated polar and
// writes converted table files in the aeroelastic simulator's input layout.
// Implements: prd001-conversion (coefficient fitting, table write);
//
//	docs/FORMATS § Converted Table.
package aerodyn

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// stallSearchMax bounds the angle-of-attack window scanned for stall points,
// in degrees either side of zero.
const stallSearchMax = 50.0

// slopeFitHalfWidth is the half-width of the linear-region window used for
// the Cn slope fit, in degrees.
const slopeFitHalfWidth = 5.0

// Writer converts validated polars into table files. It satisfies the batch
// stage's TableWriter interface.
type Writer struct {
	layout  format.Layout
	version string
}

// NewWriter returns a Writer for the given layout. The version string is
// recorded in each table's title line.
func NewWriter(layout format.Layout, version string) *Writer {
	return &Writer{layout: layout, version: version}
}

// ComputeAndWrite fits coefficients from the table and writes the converted
// file at path: a fixed-length header block followed by the 4-column data
// block. The header's NumTabs line declares a single table; the merge stage
// rewrites it when tables are combined into a library.
func (w *Writer) ComputeAndWrite(table types.PolarTable, path, label string, reynolds float64) (types.Coefficients, error) {
	if len(table) == 0 {
		return types.Coefficients{}, fmt.Errorf("empty polar table for %s", label)
	}

	coeffs := Fit(table)

	var b strings.Builder
	header := []string{
		fmt.Sprintf("Airfoil table generated by polar-engine %s", w.version),
		fmt.Sprintf("%s (Re = %.2f million)", label, reynolds),
		"Coefficients fitted from the source polar.",
		fmt.Sprintf("%-9d NumTabs    Number of airfoil tables in this file", 1),
		fmt.Sprintf("%-9.2f Re         Reynolds number in millions", reynolds),
		fmt.Sprintf("%-9.2f Control    Control setting", 0.0),
		fmt.Sprintf("%-9.2f StallAngle Stall angle (deg)", coeffs.StallAOA),
		fmt.Sprintf("%-9.2f AlphaZero  Zero-lift angle of attack (deg)", coeffs.ZeroLiftAOA),
		fmt.Sprintf("%-9.4f CnSlope    Cn slope for zero lift (per radian)", coeffs.CnSlope),
		fmt.Sprintf("%-9.4f CnStall    Cn at stall value for positive angle of attack", coeffs.CnStall),
	}
	if len(header) != w.layout.OutHeaderLines {
		return types.Coefficients{}, fmt.Errorf("header block is %d lines, layout requires %d", len(header), w.layout.OutHeaderLines)
	}
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, p := range table {
		fmt.Fprintf(&b, "%8.2f  %8.4f  %8.4f  %8.4f\n", p.AOA, p.CL, p.CD, p.CM)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return types.Coefficients{}, fmt.Errorf("writing converted table %s: %w", path, err)
	}
	return coeffs, nil
}

// Fit derives aerodynamic parameters from a validated polar. All fits are
// closed-form: zero-crossing interpolation for the zero-lift angle, least
// squares over the linear region for the slope, and normal-coefficient
// extrema for the stall points.
func Fit(table types.PolarTable) types.Coefficients {
	var c types.Coefficients
	c.ZeroLiftAOA = zeroLiftAngle(table)
	c.CnSlope = cnSlope(table)

	// Cn = CL cos(a) + CD sin(a); stall points are its extrema near zero.
	posIdx, negIdx := -1, -1
	for i, p := range table {
		cn := normalCoefficient(p)
		if p.AOA >= 0 && p.AOA <= stallSearchMax {
			if posIdx < 0 || cn > normalCoefficient(table[posIdx]) {
				posIdx = i
			}
		}
		if p.AOA <= 0 && p.AOA >= -stallSearchMax {
			if negIdx < 0 || cn < normalCoefficient(table[negIdx]) {
				negIdx = i
			}
		}
	}
	if posIdx < 0 {
		posIdx = globalExtremum(table, true)
	}
	if negIdx < 0 {
		negIdx = globalExtremum(table, false)
	}

	c.StallAOA = table[posIdx].AOA
	c.CnStall = normalCoefficient(table[posIdx])
	c.NegStallAOA = table[negIdx].AOA
	c.CnMin = normalCoefficient(table[negIdx])
	return c
}

func normalCoefficient(p types.PolarPoint) float64 {
	rad := p.AOA * math.Pi / 180
	return p.CL*math.Cos(rad) + p.CD*math.Sin(rad)
}

// zeroLiftAngle interpolates the CL sign change nearest zero angle of attack.
// Without a sign change the angle of minimum |CL| is used.
func zeroLiftAngle(table types.PolarTable) float64 {
	best := math.NaN()
	for i := 1; i < len(table); i++ {
		a, b := table[i-1], table[i]
		if a.CL == 0 {
			best = nearer(best, a.AOA)
			continue
		}
		if a.CL*b.CL < 0 && b.AOA != a.AOA {
			crossing := a.AOA - a.CL*(b.AOA-a.AOA)/(b.CL-a.CL)
			best = nearer(best, crossing)
		}
	}
	if !math.IsNaN(best) {
		return best
	}

	minIdx := 0
	for i, p := range table {
		if math.Abs(p.CL) < math.Abs(table[minIdx].CL) {
			minIdx = i
		}
	}
	return table[minIdx].AOA
}

func nearer(current, candidate float64) float64 {
	if math.IsNaN(current) || math.Abs(candidate) < math.Abs(current) {
		return candidate
	}
	return current
}

// cnSlope fits CL against AOA by least squares over the linear region and
// converts the per-degree slope to per radian. Fewer than two points in the
// window yields the thin-airfoil value 2*pi.
func cnSlope(table types.PolarTable) float64 {
	var n float64
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range table {
		if p.AOA < -slopeFitHalfWidth || p.AOA > slopeFitHalfWidth {
			continue
		}
		n++
		sumX += p.AOA
		sumY += p.CL
		sumXY += p.AOA * p.CL
		sumXX += p.AOA * p.AOA
	}
	denom := n*sumXX - sumX*sumX
	if n < 2 || denom == 0 {
		return 2 * math.Pi
	}
	perDegree := (n*sumXY - sumX*sumY) / denom
	return perDegree * 180 / math.Pi
}

func globalExtremum(table types.PolarTable, max bool) int {
	idx := 0
	for i, p := range table {
		cn, best := normalCoefficient(p), normalCoefficient(table[idx])
		if (max && cn > best) || (!max && cn < best) {
			idx = i
		}
	}
	return idx
}
