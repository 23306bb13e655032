// Package markup provides pure text transforms: cleanup of converted
// Markdown and filename sanitization.
package markup

import (
	"regexp"
	"strings"
)

var (
	// Lines containing only emphasis markers left behind by the HTML
	// conversion: **, __, or a lone _.
	markerLine = regexp.MustCompile(`(?m)^[ \t]*(\*\*|__|_)[ \t]*$`)

	// Lines of two or more underscores.
	underscoreLine = regexp.MustCompile(`(?m)^[ \t]*_{2,}[ \t]*$`)

	trailingSpace  = regexp.MustCompile(`(?m)[ \t]+$`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)

	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// Clean removes conversion artifacts from Markdown text: emphasis-marker
// lines, underscore rules, trailing whitespace, and runs of blank lines.
// Marker lines must be stripped before newlines are collapsed, since a
// removed marker line becomes a blank line that must collapse too.
// Clean is idempotent.
func Clean(text string) string {
	text = markerLine.ReplaceAllString(text, "")
	text = underscoreLine.ReplaceAllString(text, "")
	text = trailingSpace.ReplaceAllString(text, "")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// SanitizeFilename replaces every character that is invalid in a filename
// with an underscore.
func SanitizeFilename(name string) string {
	return invalidFilenameChars.ReplaceAllString(name, "_")
}
