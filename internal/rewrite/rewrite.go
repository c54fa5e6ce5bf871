// Package rewrite turns pattern matches into new document text.
//
// Replacement is span-identity based: each match's exact byte span is
// replaced, never a looser substring search. This matters when the same
// literal occurs twice with different intended treatment (an exact #project
// next to #project/alpha, say) — a textual search-and-replace would catch
// both.
package rewrite

import (
	"strings"

	"github.com/aidanlsb/vaultmend/internal/pattern"
)

// Rule computes the replacement text for a single match.
type Rule interface {
	Rewrite(m pattern.Match) string
}

// Apply replaces every match span in text with the rule's output, in the
// original left-to-right order, and returns the new text plus the number of
// matches whose replacement actually differed from the matched text.
//
// A match that rewrites to itself does not count as a change, so applying
// the same rule twice always yields zero changes on the second pass.
func Apply(text string, matches []pattern.Match, rule Rule) (string, int) {
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))

	changes := 0
	last := 0
	for _, m := range matches {
		replacement := rule.Rewrite(m)
		b.WriteString(text[last:m.Start])
		b.WriteString(replacement)
		last = m.End
		if replacement != m.Text {
			changes++
		}
	}
	b.WriteString(text[last:])

	return b.String(), changes
}

// Wikilink replaces every match with a link to a fixed target. Used to
// convert tags to wikilinks.
type Wikilink struct {
	Target string
}

func (r Wikilink) Rewrite(pattern.Match) string {
	return "[[" + r.Target + "]]"
}

// SimplifyLink strips the folder path from a pathed wikilink, keeping the
// target name and any alias. Expects the pathed-wikilink groups
// (prefix, target, alias).
type SimplifyLink struct{}

func (SimplifyLink) Rewrite(m pattern.Match) string {
	if len(m.Groups) < 3 {
		return m.Text
	}
	target := m.Groups[1]
	if alias := m.Groups[2]; alias != "" {
		return "[[" + target + "|" + alias + "]]"
	}
	return "[[" + target + "]]"
}

// Remove deletes the match outright. Used to clean done markers.
type Remove struct{}

func (Remove) Rewrite(pattern.Match) string {
	return ""
}

// NavRow rebuilds a broken four-slot navigation row, restoring the closing
// brackets and prefixing each target with its category folder: the outer
// two slots are weekly notes, the inner two daily notes. Aliases are kept
// verbatim after trimming incidental whitespace.
type NavRow struct {
	WeeklyDir string
	DailyDir  string
}

func (r NavRow) Rewrite(m pattern.Match) string {
	if len(m.Groups) < 8 {
		return m.Text
	}

	dirs := []string{r.WeeklyDir, r.DailyDir, r.DailyDir, r.WeeklyDir}

	var b strings.Builder
	b.WriteString("←←")
	for i, dir := range dirs {
		target := strings.TrimSpace(m.Groups[i*2])
		alias := strings.TrimSpace(m.Groups[i*2+1])

		if i > 0 {
			b.WriteString(" /")
		}
		b.WriteString(" [[")
		b.WriteString(dir)
		b.WriteString("/")
		b.WriteString(target)
		if alias != "" {
			b.WriteString(" |")
			b.WriteString(alias)
		}
		b.WriteString("]]")
	}
	b.WriteString(" →→")

	return b.String()
}
