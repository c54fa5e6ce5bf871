// Package genmeta generates front matter for notes via an external
// generative-text service.
//
// The service sits behind the Generator interface so the core never depends
// on a specific provider's protocol; tests inject a double, and any failure
// is recovered locally with a deterministic fallback block.
package genmeta

import (
	"context"
	"path"
	"strings"
)

// summaryLimit is the rune budget for the content sample sent to the
// generator.
const summaryLimit = 2500

// Request carries everything the generator needs for one note.
type Request struct {
	// FileName is the note's base name, extension included.
	FileName string

	// RelPath is the note's path relative to the vault root.
	RelPath string

	// Folders are the path segments above the note, hidden and
	// underscore-prefixed segments dropped.
	Folders []string

	// ExistingFrontMatter is the note's current block, empty when absent.
	ExistingFrontMatter string

	// Rules is the opaque reference text describing how front matter
	// should be written. Read once per run, passed through unparsed.
	Rules string

	// ContentSummary is the length-bounded body sample.
	ContentSummary string
}

// Generator produces a front matter block (without delimiters) for a note.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BuildRequest assembles a generation request for one note.
func BuildRequest(relPath, frontMatter, body, rules string) Request {
	rel := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))

	var folders []string
	segments := strings.Split(rel, "/")
	for _, seg := range segments[:len(segments)-1] {
		if seg == "" || strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "_") {
			continue
		}
		folders = append(folders, seg)
	}

	return Request{
		FileName:            path.Base(rel),
		RelPath:             rel,
		Folders:             folders,
		ExistingFrontMatter: frontMatter,
		Rules:               rules,
		ContentSummary:      Summarize(body, summaryLimit),
	}
}

// Summarize bounds content to roughly maxLen runes. Short content passes
// through; anything longer is sampled as head + middle + tail with
// truncation markers, so the generator sees the shape of the whole note.
func Summarize(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}

	head := maxLen / 2
	tail := maxLen / 4
	middle := maxLen - head - tail

	mid := len(runes) / 2
	const marker = "\n\n[...content truncated...]\n\n"

	return string(runes[:head]) + marker +
		string(runes[mid-middle/2:mid+middle/2]) + marker +
		string(runes[len(runes)-tail:])
}
