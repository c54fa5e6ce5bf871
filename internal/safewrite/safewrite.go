// Package safewrite commits rewritten note content to disk with optional
// backup snapshots and a dry-run mode.
//
// Writes are atomic: content goes to a temporary file in the same directory
// which is then renamed into place, so a crash mid-write cannot leave a
// torn note behind.
package safewrite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidanlsb/vaultmend/internal/textenc"
)

// Options controls how a commit behaves.
type Options struct {
	// Backup writes the original content to a sibling file before the
	// rewrite is committed. Requires Label.
	Backup bool

	// DryRun computes and reports intent without touching the filesystem.
	DryRun bool

	// Label discriminates backups from different rule runs against the
	// same file, so a tag-conversion backup never clobbers a nav-fix one.
	Label string

	// Encoding is the encoding the original file was decoded with; both
	// the backup and the rewritten file are written back in it.
	Encoding textenc.Encoding
}

// Outcome reports what a commit did (or would have done).
type Outcome int

const (
	// Unchanged means updated content equals the original; nothing was
	// written and no backup was created, regardless of options.
	Unchanged Outcome = iota

	// WouldWrite means the content differs but DryRun suppressed the write.
	WouldWrite

	// Written means the file was rewritten (and backed up, if requested).
	Written
)

// BackupPath derives the backup sibling for a note path and rule label.
func BackupPath(path, label string) string {
	return path + "." + label + ".bak"
}

// Commit writes updated content to path.
//
// The no-op short-circuit comes first: identical content produces Unchanged
// with no filesystem activity under any flag combination. Otherwise the
// backup (when enabled) is written before the note itself, so a failed
// backup leaves the original untouched.
func Commit(path string, original, updated string, opts Options) (Outcome, error) {
	if updated == original {
		return Unchanged, nil
	}
	if opts.Backup && opts.Label == "" {
		return Unchanged, fmt.Errorf("backup requested without a label")
	}
	if opts.DryRun {
		return WouldWrite, nil
	}

	if opts.Backup {
		data, err := textenc.Encode(original, opts.Encoding)
		if err != nil {
			return Unchanged, fmt.Errorf("encode backup: %w", err)
		}
		if err := writeAtomic(BackupPath(path, opts.Label), data, 0o644); err != nil {
			return Unchanged, fmt.Errorf("write backup: %w", err)
		}
	}

	data, err := textenc.Encode(updated, opts.Encoding)
	if err != nil {
		return Unchanged, fmt.Errorf("encode content: %w", err)
	}
	if err := writeAtomic(path, data, 0); err != nil {
		return Unchanged, fmt.Errorf("write %s: %w", path, err)
	}
	return Written, nil
}

// WriteFile writes data to path atomically with the given permissions.
// It exists for callers outside the note-commit flow, like config saving.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeAtomic(path, data, perm)
}

// writeAtomic writes data to path via a temp file and rename.
//
// perm applies to the temp file. A zero perm preserves the existing file's
// mode when it exists, falling back to 0644.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort; some filesystems may not support chmod here.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
