package ui

import (
	"strings"
	"testing"
)

func TestNormalizeAccentColor(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"39", "39", true},
		{"255", "255", true},
		{"#A78BFA", "#A78BFA", true},
		{" 39 ", "39", true},
		{"", "", false},
		{"300", "", false},
		{"#FFF", "", false},
		{"purple", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeAccentColor(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("normalizeAccentColor(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConfigureThemeAccent(t *testing.T) {
	origAccent := accentColor
	origTheme := codeTheme
	t.Cleanup(func() {
		accentColor = origAccent
		codeTheme = origTheme
	})

	ConfigureTheme("39", "monokai")
	got, ok := AccentColor()
	if !ok || got != "39" {
		t.Errorf("AccentColor() = (%q, %v), want (39, true)", got, ok)
	}
	if CodeTheme() != "monokai" {
		t.Errorf("CodeTheme() = %q", CodeTheme())
	}

	// Invalid accent leaves the previous value in place.
	ConfigureTheme("not-a-color", "")
	if got, _ := AccentColor(); got != "39" {
		t.Errorf("invalid accent replaced the active one: %q", got)
	}
}

func TestOutputHelpers(t *testing.T) {
	if got := Success("done"); got != "✓ done" {
		t.Errorf("Success = %q", got)
	}
	if got := Errorf("%d failed", 2); got != "✗ 2 failed" {
		t.Errorf("Errorf = %q", got)
	}
	if got := Count(1, "file", "files"); got != "(1 file)" {
		t.Errorf("Count = %q", got)
	}
	if got := Count(3, "file", "files"); got != "(3 files)" {
		t.Errorf("Count = %q", got)
	}
}

func TestTableAlignment(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("#tag", "12")
	tbl.AddRow("#longer-tag", "3")

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#tag        ") {
		t.Errorf("first column not padded: %q", lines[0])
	}
	if strings.HasSuffix(lines[1], " ") {
		t.Errorf("last column padded: %q", lines[1])
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nsome text\n", 80)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading: %q", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("trailing newlines not normalized: %q", out)
	}
}
