package service

import "context"

// Service defines the read-only operations against the task backend.
// All Graph API calls go through this interface; the exporter and
// commands never import the HTTP client directly.
type Service interface {
	// ListTaskLists returns all task lists. The provider exposes this as
	// a delta read; no cursor is tracked, so every call is a full listing.
	ListTaskLists(ctx context.Context) ([]TaskList, error)

	// ListTasks returns the tasks of a list in API order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// ListAttachments returns the attachments of a task.
	ListAttachments(ctx context.Context, listID, taskID string) ([]Attachment, error)

	// AttachmentContent downloads the raw bytes of a file attachment.
	AttachmentContent(ctx context.Context, listID, taskID, attachmentID string) ([]byte, error)
}
