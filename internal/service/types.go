// Package service defines the backend-agnostic interface for To Do reads.
package service

// FileAttachmentType is the OData type tag marking an attachment whose
// binary content is downloadable, as opposed to a link attachment.
const FileAttachmentType = "#microsoft.graph.taskFileAttachment"

// TaskList identifies a collection of tasks.
type TaskList struct {
	ID          string
	DisplayName string
}

// DateTimeZone is a timestamp paired with its time zone name.
type DateTimeZone struct {
	DateTime string
	TimeZone string
}

// ItemBody is a task body with its content type ("html" or "text").
type ItemBody struct {
	ContentType string
	Content     string
}

// Task is a single task item. Due, Reminder, and Body are optional.
type Task struct {
	ID       string
	Title    string
	Status   string // "completed" or any other provider status
	Due      *DateTimeZone
	Reminder *DateTimeZone
	Body     *ItemBody
}

// Completed reports whether the task's status is the completed state.
// Every other status renders as not completed.
func (t Task) Completed() bool {
	return t.Status == "completed"
}

// Attachment describes a task attachment. Size is in bytes.
type Attachment struct {
	ID        string
	Name      string
	Size      int64
	ODataType string
}

// IsFile reports whether the attachment carries downloadable content.
func (a Attachment) IsFile() bool {
	return a.ODataType == FileAttachmentType
}
