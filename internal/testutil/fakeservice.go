// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"mstodo/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for tests.
type FakeService struct {
	mu          sync.RWMutex
	lists       []service.TaskList
	tasks       map[string][]service.Task       // listID -> tasks
	attachments map[string][]service.Attachment // listID/taskID -> attachments
	content     map[string][]byte               // listID/taskID/attachmentID -> bytes

	// Error injection for testing
	ListTaskListsErr     error
	ListTasksErr         map[string]error // listID -> error
	ListAttachmentsErr   error
	AttachmentContentErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:        make(map[string][]service.Task),
		attachments:  make(map[string][]service.Attachment),
		content:      make(map[string][]byte),
		ListTasksErr: make(map[string]error),
	}
}

// AddList adds a task list.
func (f *FakeService) AddList(id, displayName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, DisplayName: displayName})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds a task to a list.
func (f *FakeService) AddTask(listID string, task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], task)
}

// AddAttachment adds an attachment to a task, with optional content bytes.
func (f *FakeService) AddAttachment(listID, taskID string, att service.Attachment, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := listID + "/" + taskID
	f.attachments[key] = append(f.attachments[key], att)
	if content != nil {
		f.content[key+"/"+att.ID] = content
	}
}

// ListTaskLists implements service.Service.
func (f *FakeService) ListTaskLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListTaskListsErr != nil {
		return nil, f.ListTaskListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	lists := make([]service.TaskList, len(f.lists))
	copy(lists, f.lists)
	return lists, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err := f.ListTasksErr[listID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	tasks := make([]service.Task, len(f.tasks[listID]))
	copy(tasks, f.tasks[listID])
	return tasks, nil
}

// ListAttachments implements service.Service.
func (f *FakeService) ListAttachments(ctx context.Context, listID, taskID string) ([]service.Attachment, error) {
	if f.ListAttachmentsErr != nil {
		return nil, f.ListAttachmentsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	atts := f.attachments[listID+"/"+taskID]
	result := make([]service.Attachment, len(atts))
	copy(result, atts)
	return result, nil
}

// AttachmentContent implements service.Service.
func (f *FakeService) AttachmentContent(ctx context.Context, listID, taskID, attachmentID string) ([]byte, error) {
	if f.AttachmentContentErr != nil {
		return nil, f.AttachmentContentErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	content, ok := f.content[listID+"/"+taskID+"/"+attachmentID]
	if !ok {
		return nil, ErrNotFound
	}
	return content, nil
}
