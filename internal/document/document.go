// Package document splits raw notes into a front matter block and a body.
//
// A note has front matter only when its very first line is exactly the
// three-dash delimiter. Detection never errors: anything ambiguous (no
// opening delimiter, unclosed block) degrades to "no front matter" and the
// whole input becomes the body.
package document

import (
	"bufio"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the line that opens and closes a front matter block.
const Delimiter = "---"

// probeLineLimit bounds how far into a file the head probe looks for the
// closing delimiter before giving up.
const probeLineLimit = 45

// Document is one parsed note. It lives for the duration of a single
// transformation and is never shared across files.
type Document struct {
	// FrontMatter is the trimmed text strictly between the two delimiters.
	// Empty when HasFrontMatter is false.
	FrontMatter string

	// Body is the trimmed text after the closing delimiter, or the whole
	// trimmed input when there is no front matter.
	Body string

	// HasFrontMatter reports whether a well-formed block was found.
	HasFrontMatter bool

	// Raw is the original input, untouched.
	Raw string
}

// Split separates raw note content into front matter and body.
//
// Only the first two delimiter occurrences are ever considered; a third
// delimiter later in the content is folded into the body untouched. A
// delimiter that is not the very first line never opens a block, so
// `---` inside a body (for example in a code block) cannot be mistaken
// for front matter.
func Split(raw string) Document {
	doc := Document{Raw: raw}

	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		doc.Body = strings.TrimSpace(raw)
		return doc
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			doc.FrontMatter = strings.TrimSpace(strings.Join(lines[1:i], "\n"))
			doc.Body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			doc.HasFrontMatter = true
			return doc
		}
	}

	// Opening delimiter but no close: treat the whole input as body.
	doc.Body = strings.TrimSpace(raw)
	return doc
}

// Reassemble joins a front matter block and body back into standard form.
// For a document produced by Split this reproduces the original content
// modulo the documented trimming at the block boundaries.
func Reassemble(frontMatter, body string) string {
	if frontMatter == "" {
		return body
	}
	return Delimiter + "\n" + frontMatter + "\n" + Delimiter + "\n\n" + body
}

// Content returns the full current text of the document.
func (d Document) Content() string {
	if !d.HasFrontMatter {
		return d.Body
	}
	return Reassemble(d.FrontMatter, d.Body)
}

// Fields parses the front matter block as YAML. A document without front
// matter yields an empty map. Invalid YAML is reported so callers can fall
// back to treating the block as opaque text.
func (d Document) Fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if !d.HasFrontMatter {
		return fields, nil
	}
	if err := yaml.Unmarshal([]byte(d.FrontMatter), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// BodyOffset returns the byte offset in raw where the body begins: just
// past the closing delimiter line when a front matter block is present,
// otherwise zero. Rewrites scoped to the body match against the raw text
// from this offset on, so untouched files stay byte-identical.
func BodyOffset(raw string) int {
	lines := strings.SplitAfter(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return 0
	}
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		offset += len(lines[i])
		if strings.TrimSpace(lines[i]) == Delimiter {
			return offset
		}
	}
	return 0
}

// HasFrontMatterHead reports whether the file at path starts with a front
// matter block, reading only the head of the file. The closing delimiter
// must appear within the first probeLineLimit lines.
func HasFrontMatterHead(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return false, scanner.Err()
	}
	if strings.TrimSpace(scanner.Text()) != Delimiter {
		return false, nil
	}

	for i := 0; scanner.Scan(); i++ {
		if strings.TrimSpace(scanner.Text()) == Delimiter {
			return true, nil
		}
		if i > probeLineLimit {
			break
		}
	}
	return false, scanner.Err()
}
