// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// fakeWriter implements TableWriter for testing. It records calls and writes
// a marker file, or fails for configured labels.
type fakeWriter struct {
	calls    []string
	failFor  map[string]error
	lastPath string
}

func (f *fakeWriter) ComputeAndWrite(table types.PolarTable, path, label string, reynolds float64) (types.Coefficients, error) {
	f.calls = append(f.calls, label)
	if err, ok := f.failFor[label]; ok {
		return types.Coefficients{}, err
	}
	f.lastPath = path
	if err := os.WriteFile(path, []byte("converted\n"), 0o644); err != nil {
		return types.Coefficients{}, err
	}
	return types.Coefficients{}, nil
}

// writePolar writes a source polar fixture: 17 header lines with POLARNAME
// and Reynolds at their fixed positions, then the given data lines.
func writePolar(t *testing.T, dir, name, label string, data ...string) string {
	t.Helper()
	lines := make([]string, 17, 17+len(data))
	for i := range lines {
		lines[i] = fmt.Sprintf("header %d", i+1)
	}
	lines[9] = "POLARNAME - " + label
	lines[13] = "1 2500000"
	lines = append(lines, data...)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(dir string) types.ConvertConfig {
	return types.ConvertConfig{
		InputDir:   dir,
		Pattern:    "*.plr",
		OutDirName: "converted",
		LogName:    "conversion.log",
	}
}

var fullCoverage = []string{
	"-180.0 0.0 0.02 0.0",
	"0.0 0.5 0.01 -0.05",
	"180.0 0.0 0.02 0.0",
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	writePolar(t, dir, "a.plr", "NACA0012", fullCoverage...)

	writer := &fakeWriter{}
	var out bytes.Buffer
	summary, err := Run(testConfig(dir), writer, format.Default(), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Converted != 1 || summary.Total() != 1 {
		t.Errorf("summary = %+v, want 1 converted", summary)
	}
	res := summary.Results[0]
	if res.Outcome != types.OutcomeSuccess {
		t.Errorf("outcome = %q, want success", res.Outcome)
	}
	if res.Label != "NACA0012" {
		t.Errorf("label = %q", res.Label)
	}
	if res.Reynolds != 2.5 {
		t.Errorf("reynolds = %v, want 2.5", res.Reynolds)
	}
	if want := filepath.Join(dir, "converted", "a.dat"); writer.lastPath != want {
		t.Errorf("output path = %q, want %q", writer.lastPath, want)
	}

	logData, err := os.ReadFile(filepath.Join(dir, "converted", "conversion.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(logData), "success    a.plr") {
		t.Errorf("log does not record the success: %s", logData)
	}
	if !strings.Contains(out.String(), "Batch summary:") {
		t.Error("console output should contain the summary line")
	}
}

func TestRunNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(testConfig(dir), &fakeWriter{}, format.Default(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Run should fail when no files match")
	}
	if !strings.Contains(err.Error(), "no files matching") {
		t.Errorf("error = %v", err)
	}
}

func TestRunIsolation(t *testing.T) {
	dir := t.TempDir()
	// a: non-finite, skipped. b: writer failure. c: clean. Directory order
	// is alphabetical, so the bad files come first.
	writePolar(t, dir, "a.plr", "BAD", "-180 NaN 0.02 0", "180 0 0.02 0")
	writePolar(t, dir, "b.plr", "CRASH", fullCoverage...)
	writePolar(t, dir, "c.plr", "GOOD", fullCoverage...)

	writer := &fakeWriter{failFor: map[string]error{"CRASH": errors.New("fit diverged")}}
	summary, err := Run(testConfig(dir), writer, format.Default(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Skipped != 1 || summary.Failed != 1 || summary.Converted != 1 {
		t.Fatalf("summary = %+v, want 1 skipped, 1 failed, 1 converted", summary)
	}
	outcomes := map[string]types.OutcomeCode{}
	for _, r := range summary.Results {
		outcomes[r.File] = r.Outcome
	}
	if outcomes["a.plr"] != types.OutcomeSkippedNonFinite {
		t.Errorf("a.plr outcome = %q", outcomes["a.plr"])
	}
	if outcomes["b.plr"] != types.OutcomeFailedExternalWrite {
		t.Errorf("b.plr outcome = %q", outcomes["b.plr"])
	}
	if outcomes["c.plr"] != types.OutcomeSuccess {
		t.Errorf("c.plr outcome = %q: earlier failures must not leak", outcomes["c.plr"])
	}
}

func TestConvertFileOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		data    []string
		want    types.OutcomeCode
		written bool
	}{
		{
			name:    "full coverage success",
			data:    fullCoverage,
			want:    types.OutcomeSuccess,
			written: true,
		},
		{
			name:    "partial coverage written with warning",
			data:    []string{"-20 -1.0 0.02 0", "20 1.2 0.02 0"},
			want:    types.OutcomeWrittenWithWarning,
			written: true,
		},
		{
			name: "three columns skipped",
			data: []string{"-180 0 0.02", "180 0 0.02"},
			want: types.OutcomeSkippedInsufficientColumns,
		},
		{
			name: "non-finite skipped",
			data: []string{"-180 0 0.02 0", "0 Inf 0.01 0", "180 0 0.02 0"},
			want: types.OutcomeSkippedNonFinite,
		},
		{
			name: "no data rows skipped as unreadable",
			data: nil,
			want: types.OutcomeSkippedUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outDir := filepath.Join(dir, "out")
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				t.Fatal(err)
			}
			path := writePolar(t, dir, "x.plr", "TEST", tt.data...)

			writer := &fakeWriter{}
			res := ConvertFile(path, outDir, writer, format.Default())

			if res.Outcome != tt.want {
				t.Fatalf("outcome = %q, want %q (detail: %s)", res.Outcome, tt.want, res.Detail)
			}
			if tt.written != (len(writer.calls) > 0) {
				t.Errorf("writer called = %v, want %v", len(writer.calls) > 0, tt.written)
			}
		})
	}
}

func TestConvertFileShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.plr")
	if err := os.WriteFile(path, []byte("only\nthree\nlines\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := ConvertFile(path, dir, &fakeWriter{}, format.Default())
	if res.Outcome != types.OutcomeSkippedUnreadable {
		t.Errorf("outcome = %q, want skipped_unreadable", res.Outcome)
	}
}

func TestConvertFileMetadataFallbacks(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 17)
	for i := range lines {
		lines[i] = "plain header"
	}
	lines = append(lines, fullCoverage...)
	path := filepath.Join(dir, "noname.plr")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := ConvertFile(path, dir, &fakeWriter{}, format.Default())
	if res.Outcome != types.OutcomeSuccess {
		t.Fatalf("outcome = %q (detail: %s)", res.Outcome, res.Detail)
	}
	if res.Label != "noname" {
		t.Errorf("label = %q, want base name fallback", res.Label)
	}
	if res.Reynolds != 1.0 {
		t.Errorf("reynolds = %v, want 1.0 default", res.Reynolds)
	}
	if !strings.Contains(res.Detail, "defaulted") {
		t.Errorf("detail should note the fallbacks: %q", res.Detail)
	}
}

func TestRunTabDelimitedSource(t *testing.T) {
	dir := t.TempDir()
	data := []string{
		"-180.0\t0.0\t0.02\t0.0",
		"0.0\t0.5\t0.01\t-0.05",
		"180.0\t0.0\t0.02\t0.0",
	}
	writePolar(t, dir, "tabbed.plr", "TAB01", data...)

	summary, err := Run(testConfig(dir), &fakeWriter{}, format.Default(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}
