// Package pattern finds vault-specific textual patterns: tags, pathed
// wikilinks, navigation rows, and done markers.
//
// All matchers scan the unmodified input left-to-right and return
// non-overlapping matches in strictly increasing start order. Go's regexp
// engine has no lookaround, so word-boundary conditions around tag markers
// are enforced with an explicit byte check on the surrounding text.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is one occurrence of a pattern in a document.
type Match struct {
	// Start and End are byte offsets into the scanned text, End exclusive.
	Start int
	End   int

	// Text is the exact matched substring.
	Text string

	// Groups holds the captured submatches in order. A group that did not
	// participate in the match is the empty string.
	Groups []string
}

// Pattern is a compiled matcher for one pattern family.
type Pattern struct {
	re *regexp.Regexp

	// accept vetoes candidate matches that fail boundary conditions the
	// regexp alone cannot express.
	accept func(text string, start, end int) bool
}

// FindAll returns every accepted match in text, ordered by start offset.
// Matches never overlap: scanning resumes strictly after each match.
func (p *Pattern) FindAll(text string) []Match {
	var out []Match
	for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := idx[0], idx[1]
		if p.accept != nil && !p.accept(text, start, end) {
			continue
		}
		m := Match{
			Start: start,
			End:   end,
			Text:  text[start:end],
		}
		for g := 1; g*2 < len(idx); g++ {
			if idx[g*2] >= 0 {
				m.Groups = append(m.Groups, text[idx[g*2]:idx[g*2+1]])
			} else {
				m.Groups = append(m.Groups, "")
			}
		}
		out = append(out, m)
	}
	return out
}

// segmentChars are the characters allowed inside a tag path segment.
const segmentChars = `a-zA-Z0-9_.\-`

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// precededByWord reports whether the byte before start is a word character,
// which disqualifies a tag match (the marker must sit on a word boundary).
func precededByWord(text string, start int) bool {
	return start > 0 && isWordByte(text[start-1])
}

func followedByWord(text string, end int) bool {
	return end < len(text) && isWordByte(text[end])
}

// NewTag compiles a matcher for one configured tag, marker included.
//
// In exact mode only the bare tag matches: a following word character or a
// deeper `/segment` disqualifies the occurrence, so a pattern for #project
// matches neither #project2 nor #project/alpha. In hierarchical mode nested
// segments are consumed as part of the match; #project2 is still excluded.
func NewTag(tag string, exact bool) (*Pattern, error) {
	if !strings.HasPrefix(tag, "#") {
		return nil, fmt.Errorf("tag must start with #: %q", tag)
	}
	if len(tag) == 1 {
		return nil, fmt.Errorf("tag must have at least one character after #")
	}

	expr := regexp.QuoteMeta(tag)
	if !exact {
		expr += `(?:/[` + segmentChars + `]+)*`
	}

	return &Pattern{
		re: regexp.MustCompile(expr),
		accept: func(text string, start, end int) bool {
			if precededByWord(text, start) || followedByWord(text, end) {
				return false
			}
			if exact && end < len(text) && text[end] == '/' {
				return false
			}
			return true
		},
	}, nil
}

// NewAnyTag compiles the generic tag matcher used for inventory scans. It
// matches any marker-prefixed path-like token.
func NewAnyTag() *Pattern {
	return &Pattern{
		re: regexp.MustCompile(`#[` + segmentChars + `/]+`),
		accept: func(text string, start, _ int) bool {
			return !precededByWord(text, start)
		},
	}
}

// NewPathedWikilink compiles a matcher for wikilinks that carry a folder
// path: [[path/to/Target]] or [[path/to/Target|alias]].
//
// Groups: 1 = path prefix including the final slash, 2 = target name,
// 3 = optional alias (empty when absent).
func NewPathedWikilink() *Pattern {
	return &Pattern{
		re: regexp.MustCompile(`\[\[([^\[\]|]*?/+)([^/\[\]|]+)(?:\|([^\[\]|]*))?\]\]`),
	}
}

// navSlot matches one [[target or [[target |alias slot of a broken
// navigation row (the closing brackets were eaten by an earlier rewrite).
const navSlot = `\[\[([^\]/|]+)(?:\s*\|([^\]/]+))?\s*`

// NewNavRow compiles the matcher for the four-slot navigation row found in
// daily notes:
//
//	←← [[week / [[prev-day / [[next-day / [[week →→
//
// The whole row matches as a single record with eight groups (four targets,
// four optional aliases) so the rewrite can rebuild it atomically; a partial
// row never matches.
func NewNavRow() *Pattern {
	return &Pattern{
		re: regexp.MustCompile(
			`←←\s*` + navSlot + `/\s*` + navSlot + `/\s*` + navSlot + `/\s*` + navSlot + `→→`,
		),
	}
}

// NewDoneTag compiles the matcher for completion markers: #done(…) with a
// timestamp payload, or a bare #done. The payload form is preferred at any
// position where both could match.
func NewDoneTag() *Pattern {
	return &Pattern{
		re: regexp.MustCompile(`#done\s*\([^)]*\)|#done`),
		accept: func(text string, start, end int) bool {
			if precededByWord(text, start) || followedByWord(text, end) {
				return false
			}
			return true
		},
	}
}
