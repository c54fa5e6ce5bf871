package safewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/vaultmend/internal/textenc"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readNote(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCommitWritesWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "old content")

	outcome, err := Commit(path, "old content", "new content", Options{
		Backup: true,
		Label:  "tags",
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Written {
		t.Errorf("outcome = %v, want Written", outcome)
	}
	if got := readNote(t, path); got != "new content" {
		t.Errorf("file = %q, want new content", got)
	}
	if got := readNote(t, BackupPath(path, "tags")); got != "old content" {
		t.Errorf("backup = %q, want old content", got)
	}
}

func TestCommitNoOpShortCircuit(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "same")

	// Identical content must produce no write and no backup under any
	// combination of flags.
	for _, opts := range []Options{
		{},
		{Backup: true, Label: "x"},
		{DryRun: true},
		{Backup: true, DryRun: true, Label: "x"},
	} {
		outcome, err := Commit(path, "same", "same", opts)
		if err != nil {
			t.Fatalf("Commit(%+v): %v", opts, err)
		}
		if outcome != Unchanged {
			t.Errorf("Commit(%+v) = %v, want Unchanged", opts, outcome)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no backups)", len(entries))
	}
}

func TestCommitDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "old")

	outcome, err := Commit(path, "old", "new", Options{DryRun: true, Backup: true, Label: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != WouldWrite {
		t.Errorf("outcome = %v, want WouldWrite", outcome)
	}
	if got := readNote(t, path); got != "old" {
		t.Errorf("dry run modified file: %q", got)
	}
	if _, err := os.Stat(BackupPath(path, "x")); !os.IsNotExist(err) {
		t.Error("dry run created a backup")
	}
}

func TestCommitBackupRequiresLabel(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "old")

	if _, err := Commit(path, "old", "new", Options{Backup: true}); err == nil {
		t.Error("expected error for backup without label")
	}
	if got := readNote(t, path); got != "old" {
		t.Errorf("failed commit modified file: %q", got)
	}
}

func TestCommitDistinctBackupsPerLabel(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "note.md", "v1")

	if _, err := Commit(path, "v1", "v2", Options{Backup: true, Label: "tags"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Commit(path, "v2", "v3", Options{Backup: true, Label: "navfix"}); err != nil {
		t.Fatal(err)
	}

	if got := readNote(t, BackupPath(path, "tags")); got != "v1" {
		t.Errorf("tags backup = %q, want v1", got)
	}
	if got := readNote(t, BackupPath(path, "navfix")); got != "v2" {
		t.Errorf("navfix backup = %q, want v2", got)
	}
}

func TestCommitLatin1RoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{'c', 'a', 'f', 0xE9}
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	text, enc := textenc.Decode(raw)
	outcome, err := Commit(path, text, text+"!", Options{Encoding: enc})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Written {
		t.Fatalf("outcome = %v, want Written", outcome)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{'c', 'a', 'f', 0xE9}, '!')
	if string(data) != string(want) {
		t.Errorf("file bytes = %v, want %v (latin-1 preserved)", data, want)
	}
}
