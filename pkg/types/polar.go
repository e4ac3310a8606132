// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the polar-engine pipeline.
// Implements: prd001-conversion (RawPolarTable, PolarTable, Coefficients);
//
//	prd002-merge (library constants);
//	prd003-history (FileResult, BatchSummary).
//
// See docs/ARCHITECTURE § Pipeline Interface, § Data Structures.
package types

// DelimiterKind identifies how a source polar file separates its data columns.
// It is derived per file from the first data line and never persisted.
type DelimiterKind string

const (
	DelimiterTab   DelimiterKind = "tab"
	DelimiterSpace DelimiterKind = "space"
)

// RawPolarTable is the numeric table parsed from a source polar file before
// validation. Each row holds between 4 and 7 columns: AOA, CL, CD, CM and up
// to three extra columns the downstream stages ignore. Rows must all share
// one width; a ragged table is rejected by validation.
type RawPolarTable struct {
	// Rows are the parsed numeric rows in file order.
	Rows [][]float64
}

// Width returns the column count shared by every row, or -1 when the rows
// disagree. An empty table has width 0.
func (t RawPolarTable) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	w := len(t.Rows[0])
	for _, row := range t.Rows[1:] {
		if len(row) != w {
			return -1
		}
	}
	return w
}

// PolarPoint is one validated row of an aerodynamic polar.
type PolarPoint struct {
	// AOA is the angle of attack in degrees.
	AOA float64 `json:"aoa" yaml:"aoa"`

	// CL is the lift coefficient.
	CL float64 `json:"cl" yaml:"cl"`

	// CD is the drag coefficient.
	CD float64 `json:"cd" yaml:"cd"`

	// CM is the pitching-moment coefficient.
	CM float64 `json:"cm" yaml:"cm"`
}

// PolarTable is the narrowed 4-column table consumed by the coefficient
// writer: validation drops any extra source columns.
type PolarTable []PolarPoint

// Coefficients holds the aerodynamic parameters fitted from a validated
// polar. They populate the header block of a converted table file.
type Coefficients struct {
	// ZeroLiftAOA is the angle of attack of zero lift, in degrees.
	ZeroLiftAOA float64 `json:"zero_lift_aoa" yaml:"zero_lift_aoa"`

	// CnSlope is the normal-coefficient slope at zero lift, per radian.
	CnSlope float64 `json:"cn_slope" yaml:"cn_slope"`

	// StallAOA is the positive stall angle of attack, in degrees.
	StallAOA float64 `json:"stall_aoa" yaml:"stall_aoa"`

	// NegStallAOA is the negative stall angle of attack, in degrees.
	NegStallAOA float64 `json:"neg_stall_aoa" yaml:"neg_stall_aoa"`

	// CnStall is the normal coefficient at positive stall.
	CnStall float64 `json:"cn_stall" yaml:"cn_stall"`

	// CnMin is the minimum normal coefficient over the stall search range.
	CnMin float64 `json:"cn_min" yaml:"cn_min"`
}
