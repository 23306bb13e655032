// Package export drives the pipeline: fetch every task list, render each
// non-empty one into a document, and write it to a uniquely named file.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mstodo/internal/markup"
	"mstodo/internal/output"
	"mstodo/internal/service"
)

// timestampLayout renders the per-list run timestamp to the second.
const timestampLayout = "20060102_150405"

// Exporter writes one file per non-empty task list. It holds no state
// across runs.
type Exporter struct {
	Service  service.Service
	Renderer output.Renderer

	// OutDir is where documents and downloaded attachments are written.
	OutDir string

	// SaveAttachments downloads file-attachment content alongside the
	// documents. Link attachments are listed but never downloaded.
	SaveAttachments bool

	// Now supplies the filename timestamp. Defaults to time.Now.
	Now func() time.Time

	// Out receives a completion notice per exported list. May be nil.
	Out io.Writer

	// Quiet suppresses completion notices.
	Quiet bool
}

// Run exports every non-empty list. Files written before a failure remain
// on disk.
func (e *Exporter) Run(ctx context.Context) error {
	lists, err := e.Service.ListTaskLists(ctx)
	if err != nil {
		return err
	}

	for _, list := range lists {
		if err := e.exportList(ctx, list); err != nil {
			return err
		}
	}
	return nil
}

// exportList renders and writes a single list. A list with zero tasks
// produces no file and no notice.
func (e *Exporter) exportList(ctx context.Context, list service.TaskList) error {
	tasks, err := e.Service.ListTasks(ctx, list.ID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		slog.Debug("skipping empty list", "list", list.DisplayName)
		return nil
	}

	filename := e.filename(list.DisplayName)
	doc, err := e.buildDocument(ctx, list, tasks)
	if err != nil {
		return err
	}

	path := filepath.Join(e.OutDir, filename)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	if e.Out != nil && !e.Quiet {
		fmt.Fprintf(e.Out, "Tasks for list '%s' have been exported to %s\n", list.DisplayName, filename)
	}
	return nil
}

// filename combines the sanitized display name with the run timestamp.
// Two lists sharing a sanitized name collide only within the same second;
// the later write then overwrites the earlier one.
func (e *Exporter) filename(displayName string) string {
	stamp := e.now().Format(timestampLayout)
	return markup.SanitizeFilename(displayName) + "_" + stamp + "." + e.Renderer.Ext()
}

// buildDocument renders the list header and every task through the
// configured renderer.
func (e *Exporter) buildDocument(ctx context.Context, list service.TaskList, tasks []service.Task) (string, error) {
	var doc strings.Builder
	doc.WriteString(e.Renderer.ListHeader(list.DisplayName))

	for i, task := range tasks {
		if i > 0 {
			doc.WriteString("\n\n")
		}
		if err := e.writeTask(ctx, &doc, list, task); err != nil {
			return "", err
		}
	}
	return doc.String(), nil
}

func (e *Exporter) writeTask(ctx context.Context, doc *strings.Builder, list service.TaskList, task service.Task) error {
	r := e.Renderer

	doc.WriteString(r.TaskHeader(task.Title))
	doc.WriteString(r.Status(task.Completed()))
	if task.Due != nil {
		doc.WriteString(r.Due(task.Due.DateTime))
	}
	if task.Reminder != nil {
		doc.WriteString(r.Reminder(task.Reminder.DateTime))
	}

	attachments, err := e.Service.ListAttachments(ctx, list.ID, task.ID)
	if err != nil {
		return err
	}
	if len(attachments) > 0 {
		doc.WriteString(r.AttachmentsHeader())
		for _, att := range attachments {
			doc.WriteString(r.AttachmentItem(att.Name, att.Size))
			if e.SaveAttachments && att.IsFile() {
				if saved, ok := e.saveAttachment(ctx, list.ID, task.ID, att); ok {
					doc.WriteString(r.SavedAttachment(saved))
				}
			}
		}
	}

	if task.Body != nil {
		if text, ok := r.Content(*task.Body); ok {
			doc.WriteString(text)
		}
	}
	return nil
}

// saveAttachment downloads one file attachment next to the documents.
// Download failures are skipped silently; the attachment stays listed in
// the document without a saved line.
func (e *Exporter) saveAttachment(ctx context.Context, listID, taskID string, att service.Attachment) (string, bool) {
	content, err := e.Service.AttachmentContent(ctx, listID, taskID, att.ID)
	if err != nil {
		slog.Debug("attachment download skipped", "attachment", att.Name, "error", err)
		return "", false
	}

	filename := "attachment_" + att.Name
	if err := os.WriteFile(filepath.Join(e.OutDir, filename), content, 0644); err != nil {
		slog.Debug("attachment write skipped", "attachment", att.Name, "error", err)
		return "", false
	}
	return filename, true
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
