package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/vaultmend/internal/batch"
	"github.com/aidanlsb/vaultmend/internal/config"
	"github.com/aidanlsb/vaultmend/internal/genmeta"
	"github.com/aidanlsb/vaultmend/internal/testutil"
)

func TestBuildInventoryReport(t *testing.T) {
	inv := &batch.Inventory{
		TotalFiles: 10,
		Counts: map[string]int{
			"#project":       5,
			"#project/alpha": 3,
			"#done":          2,
			"#rare":          1,
		},
	}
	now := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

	report := buildInventoryReport(inv, 2, []string{"#done"}, now)

	if !strings.Contains(report, "*Generated on 2025-01-10 09:30*") {
		t.Error("timestamp missing")
	}
	if !strings.Contains(report, "- Total files scanned: 10") {
		t.Error("summary missing")
	}
	if !strings.Contains(report, "| `#project` | 5 | [[project]] | project.md |") {
		t.Errorf("frequency row missing:\n%s", report)
	}
	if !strings.Contains(report, "[[project - alpha]]") {
		t.Error("nested tag wikilink suggestion missing")
	}
	if strings.Contains(report, "#done") {
		t.Error("excluded prefix appeared in report")
	}
	if strings.Contains(report, "#rare") {
		t.Error("below-min-count tag appeared in report")
	}
	// Hierarchy section groups nested tags under their root.
	if !strings.Contains(report, "### project") || !strings.Contains(report, "- #project/alpha (3 occurrences)") {
		t.Errorf("hierarchy section wrong:\n%s", report)
	}
}

func TestBuildInventoryReportOrdering(t *testing.T) {
	inv := &batch.Inventory{
		TotalFiles: 1,
		Counts:     map[string]int{"#b": 2, "#a": 2, "#c": 9},
	}
	report := buildInventoryReport(inv, 1, nil, time.Now())

	ci := strings.Index(report, "| `#c` |")
	ai := strings.Index(report, "| `#a` |")
	bi := strings.Index(report, "| `#b` |")
	if ci < 0 || ai < 0 || bi < 0 || !(ci < ai && ai < bi) {
		t.Errorf("rows not ordered by count desc then text asc:\n%s", report)
	}
}

func TestSuggestedWikilink(t *testing.T) {
	tests := []struct{ tag, want string }{
		{"#project", "project"},
		{"#project/alpha", "project - alpha"},
		{"#a/b/c", "a - b - c"},
	}
	for _, tt := range tests {
		if got := suggestedWikilink(tt.tag); got != tt.want {
			t.Errorf("suggestedWikilink(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestOriginalFor(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("note.md", "content").
		WithFile("note.md.bak", "backup").
		WithFile("note.md.tags.bak", "labeled backup").
		WithFile("gone.md.bak", "orphan").
		Build()

	bare := filepath.Join(v.Path, "note.md.bak")
	if got := originalFor(bare); got != filepath.Join(v.Path, "note.md") {
		t.Errorf("bare backup original = %q", got)
	}

	labeled := filepath.Join(v.Path, "note.md.tags.bak")
	if got := originalFor(labeled); got != filepath.Join(v.Path, "note.md") {
		t.Errorf("labeled backup original = %q", got)
	}

	orphan := filepath.Join(v.Path, "gone.md.bak")
	if got := originalFor(orphan); got != "" {
		t.Errorf("orphan backup original = %q, want empty", got)
	}
}

func TestLoadRules(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("Meta/Rules.md", "always add a title").
		Build()

	content, abs := loadRules(v.Path, "Meta/Rules.md")
	if content != "always add a title" {
		t.Errorf("content = %q", content)
	}
	if abs != filepath.Join(v.Path, "Meta", "Rules.md") {
		t.Errorf("abs = %q", abs)
	}

	// Unset rules path is not an error.
	content, abs = loadRules(v.Path, "")
	if content != "" || abs != "" {
		t.Errorf("unset rules = (%q, %q)", content, abs)
	}

	// Missing file degrades to empty rules.
	content, _ = loadRules(v.Path, "nope.md")
	if content != "" {
		t.Errorf("missing rules file content = %q", content)
	}
}

func TestGenerateForSkipsNotesWithFrontMatter(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("has.md", "---\ntitle: x\n---\nbody").
		Build()

	path := filepath.Join(v.Path, "has.md")
	outcome, err := generateFor(context.Background(), failingGenerator{}, v.Path, path, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != generatedNone {
		t.Errorf("outcome = %v, want none", outcome)
	}
	if got := v.ReadFile("has.md"); got != "---\ntitle: x\n---\nbody" {
		t.Errorf("note modified: %q", got)
	}
}

func TestGenerateForFallsBackAndBacksUp(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("plain.md", "# A Heading\n\nbody text").
		Build()

	path := filepath.Join(v.Path, "plain.md")
	outcome, err := generateFor(context.Background(), failingGenerator{}, v.Path, path, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != generatedFallback {
		t.Errorf("outcome = %v, want fallback", outcome)
	}

	got := v.ReadFile("plain.md")
	if !strings.HasPrefix(got, "---\n") || !strings.Contains(got, "A Heading") {
		t.Errorf("front matter not prepended: %q", got)
	}
	if !strings.HasSuffix(got, "# A Heading\n\nbody text") {
		t.Errorf("body not preserved: %q", got)
	}
	if backup := v.ReadFile("plain.md.yaml.bak"); backup != "# A Heading\n\nbody text" {
		t.Errorf("backup = %q", backup)
	}
}

func TestAddVault(t *testing.T) {
	dir := t.TempDir()
	c := &config.Config{}

	abs, existed, err := addVault(c, " personal ", dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if existed {
		t.Error("fresh vault reported as existing")
	}
	if abs != dir {
		t.Errorf("abs = %q, want %q", abs, dir)
	}
	if c.Vaults["personal"] != dir {
		t.Errorf("Vaults[personal] = %q", c.Vaults["personal"])
	}
	if c.DefaultVault != "personal" {
		t.Errorf("first vault not made default: %q", c.DefaultVault)
	}

	// A second vault never steals the default.
	other := t.TempDir()
	if _, _, err := addVault(c, "work", other, false); err != nil {
		t.Fatal(err)
	}
	if c.DefaultVault != "personal" {
		t.Errorf("default moved to %q", c.DefaultVault)
	}

	// Existing name requires --replace.
	if _, _, err := addVault(c, "personal", other, false); err == nil {
		t.Error("expected error replacing without --replace")
	}
	if c.Vaults["personal"] != dir {
		t.Errorf("rejected replace mutated path: %q", c.Vaults["personal"])
	}
	abs, existed, err = addVault(c, "personal", other, true)
	if err != nil {
		t.Fatal(err)
	}
	if !existed || abs != other || c.Vaults["personal"] != other {
		t.Errorf("replace failed: existed=%v abs=%q path=%q", existed, abs, c.Vaults["personal"])
	}

	// Path must be an existing directory.
	if _, _, err := addVault(c, "x", filepath.Join(dir, "missing"), false); err == nil {
		t.Error("expected error for missing path")
	}
	file := filepath.Join(dir, "note.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := addVault(c, "x", file, false); err == nil {
		t.Error("expected error for non-directory path")
	}
}

func TestSetDefaultVault(t *testing.T) {
	c := &config.Config{
		DefaultVault: "personal",
		Vaults:       map[string]string{"personal": "/p", "work": "/w"},
	}

	path, err := setDefaultVault(c, "work")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/w" || c.DefaultVault != "work" {
		t.Errorf("path=%q default=%q", path, c.DefaultVault)
	}

	if _, err := setDefaultVault(c, "nope"); err == nil {
		t.Error("expected error for unknown vault")
	}
	if c.DefaultVault != "work" {
		t.Errorf("failed set-default mutated default: %q", c.DefaultVault)
	}
}

func TestConfigMutationsPersist(t *testing.T) {
	vaultA := t.TempDir()
	vaultB := t.TempDir()
	file := filepath.Join(t.TempDir(), "config.toml")

	prev := configPath
	configPath = file
	t.Cleanup(func() { configPath = prev })

	if err := configAddVaultCmd.RunE(configAddVaultCmd, []string{"personal", vaultA}); err != nil {
		t.Fatal(err)
	}
	if err := configAddVaultCmd.RunE(configAddVaultCmd, []string{"work", vaultB}); err != nil {
		t.Fatal(err)
	}
	if err := configSetDefaultCmd.RunE(configSetDefaultCmd, []string{"work"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.LoadFrom(file)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Vaults["personal"] != vaultA || loaded.Vaults["work"] != vaultB {
		t.Errorf("vaults not persisted: %v", loaded.Vaults)
	}
	if loaded.DefaultVault != "work" {
		t.Errorf("default not persisted: %q", loaded.DefaultVault)
	}

	if err := configSetDefaultCmd.RunE(configSetDefaultCmd, []string{"nope"}); err == nil {
		t.Error("expected error for unknown vault")
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ genmeta.Request) (string, error) {
	return "", errors.New("service unavailable")
}
