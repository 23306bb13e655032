// Package msgraph implements the service.Service interface against the
// Microsoft Graph To Do API.
package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mstodo/internal/service"
)

const (
	// apiTimeout is the timeout for a single API call.
	apiTimeout = 30 * time.Second

	// preferHeader requests HTML task bodies from the provider.
	preferHeader = `outlook.body-content-type="html"`
)

// Client implements service.Service over the Graph REST endpoints.
//
// By default a non-success response on a list read yields an empty result,
// mirroring the provider-tolerant behavior this exporter inherited; Strict
// turns those responses into errors instead.
type Client struct {
	base   string
	token  string
	strict bool
	http   *http.Client
}

// NewClient creates a client for the given task-list base URL and bearer
// token.
func NewClient(baseURL, token string, strict bool) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		base:   baseURL,
		token:  token,
		strict: strict,
		http:   &http.Client{},
	}
}

// Wire shapes for the Graph responses. Collections arrive wrapped in a
// "value" envelope.

type taskListResource struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type dateTimeResource struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type bodyResource struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type taskResource struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Status           string            `json:"status"`
	DueDateTime      *dateTimeResource `json:"dueDateTime"`
	ReminderDateTime *dateTimeResource `json:"reminderDateTime"`
	Body             *bodyResource     `json:"body"`
}

type attachmentResource struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	ODataType string `json:"@odata.type"`
}

// ListTaskLists returns all task lists via the delta endpoint. No delta
// cursor is persisted, so this is always a full listing.
func (c *Client) ListTaskLists(ctx context.Context) ([]service.TaskList, error) {
	var env struct {
		Value []taskListResource `json:"value"`
	}
	if err := c.getJSON(ctx, c.base+"delta", &env); err != nil {
		return nil, err
	}

	lists := make([]service.TaskList, 0, len(env.Value))
	for _, l := range env.Value {
		lists = append(lists, service.TaskList{ID: l.ID, DisplayName: l.DisplayName})
	}
	return lists, nil
}

// ListTasks returns the tasks of a list in API order.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	var env struct {
		Value []taskResource `json:"value"`
	}
	if err := c.getJSON(ctx, c.base+listID+"/tasks", &env); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(env.Value))
	for _, t := range env.Value {
		task := service.Task{
			ID:     t.ID,
			Title:  t.Title,
			Status: t.Status,
		}
		if t.DueDateTime != nil {
			task.Due = &service.DateTimeZone{DateTime: t.DueDateTime.DateTime, TimeZone: t.DueDateTime.TimeZone}
		}
		if t.ReminderDateTime != nil {
			task.Reminder = &service.DateTimeZone{DateTime: t.ReminderDateTime.DateTime, TimeZone: t.ReminderDateTime.TimeZone}
		}
		if t.Body != nil {
			task.Body = &service.ItemBody{ContentType: t.Body.ContentType, Content: t.Body.Content}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ListAttachments returns the attachments of a task.
func (c *Client) ListAttachments(ctx context.Context, listID, taskID string) ([]service.Attachment, error) {
	var env struct {
		Value []attachmentResource `json:"value"`
	}
	url := c.base + listID + "/tasks/" + taskID + "/attachments"
	if err := c.getJSON(ctx, url, &env); err != nil {
		return nil, err
	}

	attachments := make([]service.Attachment, 0, len(env.Value))
	for _, a := range env.Value {
		attachments = append(attachments, service.Attachment{
			ID:        a.ID,
			Name:      a.Name,
			Size:      a.Size,
			ODataType: a.ODataType,
		})
	}
	return attachments, nil
}

// AttachmentContent downloads the raw bytes of an attachment. A non-success
// status is always an error here, regardless of strict mode; the caller
// decides whether to skip.
func (c *Client) AttachmentContent(ctx context.Context, listID, taskID, attachmentID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	url := c.base + listID + "/tasks/" + taskID + "/attachments/" + attachmentID + "/$value"
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment download returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// getJSON performs an authenticated GET and decodes the response into dst.
// Non-success responses either error (strict) or leave dst untouched,
// which decodes as an empty collection.
func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.strict {
			return fmt.Errorf("graph returned %s for %s", resp.Status, url)
		}
		slog.Debug("graph read returned non-success, treating as empty", "url", url, "status", resp.Status)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding graph response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Prefer", preferHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	return resp, nil
}
