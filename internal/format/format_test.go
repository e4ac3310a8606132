// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"testing"

	"github.com/pdiddy/polar-engine/pkg/types"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   types.DelimiterKind
	}{
		{"tab separated", "1.0\t2.0\t3.0", types.DelimiterTab},
		{"space separated", "1.0  2.0  3.0", types.DelimiterSpace},
		{"mixed prefers tab", "1.0 \t 2.0", types.DelimiterTab},
		{"empty line", "", types.DelimiterSpace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.sample); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.sample, got, tt.want)
			}
		})
	}
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		delim types.DelimiterKind
		want  []string
	}{
		{"collapses space runs", "1.0   2.0 3.0", types.DelimiterSpace, []string{"1.0", "2.0", "3.0"}},
		{"single spaces", "1.0 2.0", types.DelimiterSpace, []string{"1.0", "2.0"}},
		{"collapses tab runs", "1.0\t\t2.0", types.DelimiterTab, []string{"1.0", "2.0"}},
		{"tab fields shed padding", " 1.0 \t 2.0 ", types.DelimiterTab, []string{"1.0", "2.0"}},
		{"blank", "   ", types.DelimiterSpace, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitColumns(tt.line, tt.delim)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitColumns(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLayoutLabel(t *testing.T) {
	layout := Default()

	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"dash separator", "  POLARNAME  -  NACA0012  ", "NACA0012", true},
		{"no separator", "POLARNAME DU97-W-300", "DU97-W-300", true},
		{"colon separator", "POLARNAME: S809 clean", "S809 clean", true},
		{"no tag", "some other header line", "", false},
		{"tag with no value", "POLARNAME", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := layout.Label(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Label(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLayoutPatchCount(t *testing.T) {
	layout := Default()

	line := "1         NumTabs    Number of airfoil tables in this file"
	got, ok := layout.PatchCount(line, 12)
	if !ok {
		t.Fatalf("PatchCount did not match %q", line)
	}
	want := "12         NumTabs    Number of airfoil tables in this file"
	if got != want {
		t.Errorf("PatchCount = %q, want %q", got, want)
	}

	if _, ok := layout.PatchCount("2.50      Re         Reynolds number in millions", 3); ok {
		t.Error("PatchCount matched a non-count line")
	}
	if _, ok := layout.PatchCount("no number here NumTabs", 3); ok {
		t.Error("PatchCount matched a line without a leading count")
	}
}
