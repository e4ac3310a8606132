// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines converted table files into one multi-table library.
// The first full-length file donates the header block; its table-count line
// is rewritten to the number of contributing files, and every contributing
// file's data block is appended in directory-listing order.
// Implements: prd002-merge; docs/FORMATS § Library.
package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/polar-engine/internal/format"
	"github.com/pdiddy/polar-engine/pkg/types"
)

// ErrNoInput means the directory holds no eligible converted files. The
// merge writes nothing in that case rather than producing an empty library.
var ErrNoInput = errors.New("no converted files to merge")

// ErrNoCountField means the donor header carries no table-count line, so the
// header could never be made consistent with the merged contents.
var ErrNoCountField = errors.New("no table-count field in header")

// Merge scans dir for converted tables and writes the library file into the
// same directory. It returns the number of contributing tables. Files too
// short to hold a full header are skipped with a warning on w; zero eligible
// files is an error and no output file is created.
func Merge(cfg types.MergeConfig, layout format.Layout, w io.Writer) (int, error) {
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("reading merge directory: %w", err)
	}

	// Directory-listing order is the library's table order.
	var contributing [][]string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == cfg.LibraryName || !strings.EqualFold(filepath.Ext(name), layout.ConvertedExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(cfg.Dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", name, err)
			continue
		}
		lines := splitLines(string(data))
		if len(lines) <= layout.OutHeaderLines {
			fmt.Fprintf(w, "warning: skipping %s: %d line(s), no data block\n", name, len(lines))
			continue
		}
		contributing = append(contributing, lines)
	}

	if len(contributing) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoInput, cfg.Dir)
	}

	header, err := patchedHeader(contributing[0][:layout.OutHeaderLines], len(contributing), layout)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, lines := range contributing {
		for _, line := range lines[layout.OutHeaderLines:] {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	outPath := filepath.Join(cfg.Dir, cfg.LibraryName)
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing library %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "Merged %d table(s) into %s\n", len(contributing), outPath)
	return len(contributing), nil
}

// patchedHeader copies the donor header, rewriting its table-count line to
// count. A header without the count line is unrecoverable.
func patchedHeader(donor []string, count int, layout format.Layout) ([]string, error) {
	header := make([]string, len(donor))
	patched := false
	for i, line := range donor {
		if !patched {
			if replaced, ok := layout.PatchCount(line, count); ok {
				header[i] = replaced
				patched = true
				continue
			}
		}
		header[i] = line
	}
	if !patched {
		return nil, ErrNoCountField
	}
	return header, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
