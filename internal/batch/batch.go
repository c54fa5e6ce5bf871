// Package batch drives a rewrite rule across every note in a vault and
// accumulates per-file outcomes into a report.
//
// Files are processed one at a time, fully read, transformed, and committed
// before the next is considered. A single file's failure is recorded and the
// batch continues; only a root that cannot be enumerated at all aborts the
// run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/aidanlsb/vaultmend/internal/document"
	"github.com/aidanlsb/vaultmend/internal/pattern"
	"github.com/aidanlsb/vaultmend/internal/rewrite"
	"github.com/aidanlsb/vaultmend/internal/safewrite"
	"github.com/aidanlsb/vaultmend/internal/textenc"
	"github.com/aidanlsb/vaultmend/internal/walker"
)

// Status is the terminal state of one file.
type Status int

const (
	// StatusCommitted means the content changed and was written, or would
	// have been under dry-run.
	StatusCommitted Status = iota

	// StatusSkipped means no matches, matches with net-zero change, or a
	// file excluded by a size limit.
	StatusSkipped

	// StatusErrored means the file failed during read or write.
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusCommitted:
		return "committed"
	case StatusSkipped:
		return "skipped"
	default:
		return "errored"
	}
}

// ErrKind classifies per-file failures for the report.
type ErrKind string

const (
	ErrKindRead  ErrKind = "read"
	ErrKindWrite ErrKind = "write"
)

// FileOutcome records what happened to one file.
type FileOutcome struct {
	// Path is vault-relative.
	Path    string
	Status  Status
	Changes int
	Kind    ErrKind
	Err     error
}

// Report is the in-memory summary of a batch run. It is appended to while
// the batch runs and never mutated afterward.
type Report struct {
	Total    int
	Modified []FileOutcome
	Errored  []FileOutcome
	Skipped  int
	Changes  int
	Elapsed  time.Duration
}

// Scope selects which part of each document a rule applies to.
type Scope int

const (
	// ScopeWhole matches against the entire file content, front matter
	// included.
	ScopeWhole Scope = iota

	// ScopeBody restricts matching to the text after the front matter
	// block.
	ScopeBody
)

// Runner is one configured batch rewrite. Fields are set once and not
// mutated during a run.
type Runner struct {
	Root    string
	Walk    walker.Options
	Pattern *pattern.Pattern
	Rule    rewrite.Rule
	Scope   Scope

	// Label discriminates this rule's backups from other runs'.
	Label  string
	Backup bool
	DryRun bool

	// MaxFileSizeKB skips files larger than this when positive.
	MaxFileSizeKB int

	// StartAt skips the first n candidate files; MaxFiles caps how many
	// are processed. Both exist for resuming interrupted runs.
	StartAt  int
	MaxFiles int

	// Progress, when set, is called before each file with the 1-based
	// index and the candidate total.
	Progress func(done, total int)

	Log zerolog.Logger
}

// Run executes the batch over every candidate file under Root.
func (r *Runner) Run() (*Report, error) {
	start := time.Now()

	paths, err := walker.Collect(r.Root, r.Walk)
	if err != nil {
		return nil, err
	}

	if r.StartAt > 0 {
		if r.StartAt >= len(paths) {
			paths = nil
		} else {
			paths = paths[r.StartAt:]
		}
	}
	if r.MaxFiles > 0 && len(paths) > r.MaxFiles {
		paths = paths[:r.MaxFiles]
	}

	report := &Report{Total: len(paths)}
	for i, path := range paths {
		if r.Progress != nil {
			r.Progress(i+1, len(paths))
		}
		outcome := r.processFile(path)
		switch outcome.Status {
		case StatusCommitted:
			report.Modified = append(report.Modified, outcome)
			report.Changes += outcome.Changes
		case StatusSkipped:
			report.Skipped++
		case StatusErrored:
			report.Errored = append(report.Errored, outcome)
		}
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

func (r *Runner) processFile(path string) FileOutcome {
	outcome := FileOutcome{Path: r.relPath(path), Status: StatusSkipped}

	if r.MaxFileSizeKB > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return r.errored(outcome, ErrKindRead, err)
		}
		if info.Size() > int64(r.MaxFileSizeKB)*1024 {
			r.Log.Debug().Str("path", outcome.Path).Int64("bytes", info.Size()).
				Msg("skipping oversized file")
			return outcome
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return r.errored(outcome, ErrKindRead, err)
	}
	text, enc := textenc.Decode(data)

	matches := r.Pattern.FindAll(text)
	if r.Scope == ScopeBody {
		matches = afterOffset(matches, document.BodyOffset(text))
	}
	if len(matches) == 0 {
		return outcome
	}

	updated, changes := rewrite.Apply(text, matches, r.Rule)

	result, err := safewrite.Commit(path, text, updated, safewrite.Options{
		Backup:   r.Backup,
		DryRun:   r.DryRun,
		Label:    r.Label,
		Encoding: enc,
	})
	if err != nil {
		return r.errored(outcome, ErrKindWrite, err)
	}
	if result == safewrite.Unchanged {
		r.Log.Debug().Str("path", outcome.Path).Int("matches", len(matches)).
			Msg("matches present but content unchanged")
		return outcome
	}

	r.Log.Debug().Str("path", outcome.Path).Int("changes", changes).
		Bool("dry_run", r.DryRun).Msg("rewrote file")
	outcome.Status = StatusCommitted
	outcome.Changes = changes
	return outcome
}

func (r *Runner) errored(outcome FileOutcome, kind ErrKind, err error) FileOutcome {
	r.Log.Debug().Str("path", outcome.Path).Str("kind", string(kind)).Err(err).
		Msg("file errored")
	outcome.Status = StatusErrored
	outcome.Kind = kind
	outcome.Err = fmt.Errorf("%s: %w", kind, err)
	return outcome
}

func (r *Runner) relPath(path string) string {
	if rel, err := filepath.Rel(r.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// afterOffset drops matches that start before the body offset. Matches are
// ordered by start, so this is a prefix cut.
func afterOffset(matches []pattern.Match, offset int) []pattern.Match {
	for i, m := range matches {
		if m.Start >= offset {
			return matches[i:]
		}
	}
	return nil
}
