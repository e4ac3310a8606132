// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/pdiddy/polar-engine/pkg/types"
)

// RunLog is the append-only per-run record of file outcomes. It is plain
// UTF-8 text, one timestamped line per event, meant for humans; nothing
// parses it back. Single writer, sequential appends.
type RunLog struct {
	f    *os.File
	path string
}

// OpenRunLog opens or creates the log file for appending. Failure to open
// the log is fatal to the batch: a run that cannot be recorded must not run.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening run log %s: %w", path, err)
	}
	return &RunLog{f: f, path: path}, nil
}

// Path returns the log file location for the end-of-run console summary.
func (l *RunLog) Path() string { return l.path }

// Eventf appends one timestamped free-form line.
func (l *RunLog) Eventf(format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.f, "%s  %s\n", ts, fmt.Sprintf(format, args...))
}

// Result appends the outcome line for one file.
func (l *RunLog) Result(res types.FileResult) {
	switch res.Outcome {
	case types.OutcomeSuccess:
		l.Eventf("success    %s  label=%s re=%.2fM aoa=[%.1f,%.1f]",
			res.File, res.Label, res.Reynolds, res.AOAMin, res.AOAMax)
	case types.OutcomeWrittenWithWarning:
		l.Eventf("warning    %s  %s", res.File, res.Detail)
	case types.OutcomeFailedExternalWrite:
		l.Eventf("write-fail %s  %s", res.File, res.Detail)
	default:
		l.Eventf("skip       %s  %s: %s", res.File, res.Outcome, res.Detail)
	}
}

// Close flushes and closes the log file.
func (l *RunLog) Close() error {
	return l.f.Close()
}
