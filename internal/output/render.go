// Package output provides the document renderers for exported lists.
// Both output formats share the exporter's build loop; a Renderer supplies
// the per-section text and the body-content strategy.
package output

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"mstodo/internal/markup"
	"mstodo/internal/service"
)

// Renderer turns the pieces of one task list into document text.
type Renderer interface {
	// Ext returns the output file extension, without the dot.
	Ext() string

	ListHeader(displayName string) string
	TaskHeader(title string) string
	Status(completed bool) string
	Due(dateTime string) string
	Reminder(dateTime string) string
	AttachmentsHeader() string
	AttachmentItem(name string, size int64) string
	SavedAttachment(filename string) string

	// Content renders the body section. ok reports whether the section
	// should appear at all; the Markdown renderer suppresses bodies whose
	// converted text cleans down to nothing.
	Content(body service.ItemBody) (text string, ok bool)
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "markdown", "md":
		return NewMarkdown(), nil
	case "text", "txt", "plain":
		return Text{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Markdown renders the Markdown variant. HTML bodies are converted to
// Markdown and cleaned of conversion artifacts.
type Markdown struct {
	conv *md.Converter
}

// NewMarkdown creates a Markdown renderer with the converter configured
// for dash bullets and no line wrapping.
func NewMarkdown() *Markdown {
	conv := md.NewConverter("", true, &md.Options{BulletListMarker: "-"})
	return &Markdown{conv: conv}
}

func (m *Markdown) Ext() string { return "md" }

func (m *Markdown) ListHeader(displayName string) string {
	return fmt.Sprintf("# List: %s\n\n\n", displayName)
}

func (m *Markdown) TaskHeader(title string) string {
	return fmt.Sprintf("## Task: %s\n", title)
}

func (m *Markdown) Status(completed bool) string {
	return fmt.Sprintf("### Status: %s\n", statusLabel(completed))
}

func (m *Markdown) Due(dateTime string) string {
	return fmt.Sprintf("### Due: %s\n", dateTime)
}

func (m *Markdown) Reminder(dateTime string) string {
	return fmt.Sprintf("### Reminder: %s\n", dateTime)
}

func (m *Markdown) AttachmentsHeader() string {
	return "### Attachments:\n"
}

func (m *Markdown) AttachmentItem(name string, size int64) string {
	return fmt.Sprintf("- %s (Size: %d bytes)\n", name, size)
}

func (m *Markdown) SavedAttachment(filename string) string {
	return fmt.Sprintf("  - Saved attachment: %s\n", filename)
}

// Content converts the body and suppresses it entirely when the cleaned
// conversion is empty. Non-HTML bodies keep their raw content but still
// use the converted text as the emptiness gate.
func (m *Markdown) Content(body service.ItemBody) (string, bool) {
	converted, err := m.conv.ConvertString(body.Content)
	if err != nil {
		converted = body.Content
	}
	cleaned := markup.Clean(converted)
	if cleaned == "" {
		return "", false
	}

	text := cleaned
	if !strings.EqualFold(body.ContentType, "html") {
		text = body.Content
	}
	return "### Content:" + text + "\n", true
}

// Text renders the plain-text variant. Bodies are written verbatim,
// whatever their content type, and never suppressed.
type Text struct{}

func (Text) Ext() string { return "txt" }

func (Text) ListHeader(displayName string) string {
	return fmt.Sprintf("List: %s\n\n\n", displayName)
}

func (Text) TaskHeader(title string) string {
	return fmt.Sprintf("  Task: %s\n", title)
}

func (Text) Status(completed bool) string {
	return fmt.Sprintf("  Status: %s\n", statusLabel(completed))
}

func (Text) Due(dateTime string) string {
	return fmt.Sprintf("  Due: %s\n", dateTime)
}

func (Text) Reminder(dateTime string) string {
	return fmt.Sprintf("  Reminder: %s\n", dateTime)
}

func (Text) AttachmentsHeader() string {
	return "  Attachments:\n"
}

func (Text) AttachmentItem(name string, size int64) string {
	return fmt.Sprintf("    - %s (Size: %d bytes)\n", name, size)
}

func (Text) SavedAttachment(filename string) string {
	return fmt.Sprintf("      Saved attachment: %s\n", filename)
}

func (Text) Content(body service.ItemBody) (string, bool) {
	return fmt.Sprintf("  Content: %s\n", body.Content), true
}

func statusLabel(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Not Completed"
}
