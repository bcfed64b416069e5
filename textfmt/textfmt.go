// Package textfmt renders the constrained markup dialect used for
// outbound resident emails into HTML and plain text. It is a small
// token-substitution engine with no dependency on the report pipeline:
// **bold**, *italic*, [label](url) links, {{field}} placeholders and
// line breaks are the whole dialect.
package textfmt

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRegexp        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRegexp      = regexp.MustCompile(`\*([^*]+)\*`)
	linkRegexp        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	placeholderRegexp = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)
)

// Message is the rendered output in both delivery formats.
type Message struct {
	HTML  string
	Plain string
}

// Render substitutes placeholders from data and converts the markup to
// HTML and plain text. Unknown placeholders render as empty strings; the
// formatter never fails.
func Render(input string, data map[string]string) Message {
	substituted := placeholderRegexp.ReplaceAllStringFunc(input, func(m string) string {
		key := placeholderRegexp.FindStringSubmatch(m)[1]
		return data[key]
	})

	return Message{
		HTML:  toHTML(substituted),
		Plain: toPlain(substituted),
	}
}

func toHTML(s string) string {
	escaped := html.EscapeString(s)

	// Links first so the label may carry bold/italic markers.
	escaped = linkRegexp.ReplaceAllString(escaped, `<a href="$2">$1</a>`)
	escaped = boldRegexp.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = italicRegexp.ReplaceAllString(escaped, "<em>$1</em>")

	lines := strings.Split(escaped, "\n")
	return strings.Join(lines, "<br>\n")
}

func toPlain(s string) string {
	s = linkRegexp.ReplaceAllString(s, "$1 ($2)")
	s = boldRegexp.ReplaceAllString(s, "$1")
	s = italicRegexp.ReplaceAllString(s, "$1")
	return s
}
