// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todocli/internal/api"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of api.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []api.Task
	users  map[string]string // username -> password
	nextID int64

	// Error injection for testing
	RegisterErr     error
	AuthenticateErr error
	ListTasksErr    error
	GetTaskErr      error
	CreateTaskErr   error
	UpdateTaskErr   error
	DeleteTaskErr   error

	// Token is what Authenticate hands out.
	Token string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:  make(map[string]string),
		nextID: 1,
		Token:  "fake-token",
	}
}

// AddTask seeds a task with an explicit ID and advances the ID sequence
// past it.
func (f *FakeService) AddTask(id int64, title, description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, api.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
	})
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

// Register implements api.Service.
func (f *FakeService) Register(ctx context.Context, username, password string) (api.User, error) {
	if f.RegisterErr != nil {
		return api.User{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
	return api.User{ID: int64(len(f.users)), Username: username}, nil
}

// Authenticate implements api.Service.
func (f *FakeService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if f.AuthenticateErr != nil {
		return "", f.AuthenticateErr
	}
	return f.Token, nil
}

// ListTasks implements api.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]api.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]api.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetTask implements api.Service.
func (f *FakeService) GetTask(ctx context.Context, id int64) (api.Task, error) {
	if f.GetTaskErr != nil {
		return api.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return api.Task{}, ErrNotFound
}

// CreateTask implements api.Service.
func (f *FakeService) CreateTask(ctx context.Context, fields api.TaskFields) (api.Task, error) {
	if f.CreateTaskErr != nil {
		return api.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := api.Task{
		ID:          f.nextID,
		Title:       fields.Title,
		Description: fields.Description,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements api.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, patch api.TaskPatch) (api.Task, error) {
	if f.UpdateTaskErr != nil {
		return api.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		return f.tasks[i], nil
	}
	return api.Task{}, ErrNotFound
}

// DeleteTask implements api.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
