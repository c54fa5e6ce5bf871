package genmeta

import (
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// fallbackBlock fixes the field order of the deterministic fallback.
type fallbackBlock struct {
	Title         []string `yaml:"title"`
	DateCreatedAt string   `yaml:"date_created_at"`
	Type          []string `yaml:"type"`
	Tags          []string `yaml:"tags"`
}

// Fallback builds a minimal deterministic front matter block for when the
// generator fails or returns unusable content. The title comes from the
// first heading in the body when present, otherwise from the file name.
func Fallback(req Request, body string, now time.Time) string {
	title := FirstHeading(body)
	if title == "" {
		title = titleFromFileName(req.FileName)
	}

	block := fallbackBlock{
		Title:         []string{title},
		DateCreatedAt: now.Format("2006-01-02"),
		Type:          []string{"[[Notes]]"},
		Tags:          []string{"#untagged"},
	}

	data, err := yaml.Marshal(block)
	if err != nil {
		// Marshalling a fixed struct of strings cannot fail.
		return ""
	}
	return strings.TrimSpace(string(data))
}

// FirstHeading returns the text of the first heading in markdown content,
// or "" when there is none.
func FirstHeading(content string) string {
	md := goldmark.New()
	source := []byte(content)
	doc := md.Parser().Parse(gtext.NewReader(source))

	var found string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found != "" {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				b.Write(textNode.Segment.Value(source))
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			found = text
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return found
}

func titleFromFileName(name string) string {
	title := strings.TrimSuffix(name, ".md")
	title = strings.ReplaceAll(title, "_", " ")
	return strings.TrimSpace(title)
}
