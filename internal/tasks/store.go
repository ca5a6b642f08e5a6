// Package tasks maintains the session-local mirror of the remote task
// collection. Every mutation is confirm-then-apply: the cache changes
// only after the service has accepted the mutation, so it never shows
// state the server has not confirmed.
package tasks

import (
	"context"
	"sync"

	"todocli/internal/api"
)

// Store is the in-memory task cache. It is safe for concurrent use;
// overlapping operations for different tasks interleave freely, and
// overlapping mutations of the same task resolve last-response-wins --
// responses are applied in completion order with no request sequencing.
type Store struct {
	svc api.Service

	mu      sync.RWMutex
	todos   []api.Task
	loading bool
	lastErr string
}

// NewStore creates an empty Store backed by the given service.
func NewStore(svc api.Service) *Store {
	return &Store{svc: svc}
}

// Load fetches the full task collection and replaces the cache with the
// result. On failure the cache is left as it was (stale but consistent)
// and the error is recorded and returned.
func (s *Store) Load(ctx context.Context) error {
	s.begin(true)
	todos, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.fail(err, true)
		return err
	}

	s.mu.Lock()
	s.todos = todos
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Create asks the service to create a task and, on success, appends the
// server-returned task (with its server-assigned ID) to the cache.
func (s *Store) Create(ctx context.Context, fields api.TaskFields) (api.Task, error) {
	s.begin(false)
	created, err := s.svc.CreateTask(ctx, fields)
	if err != nil {
		s.fail(err, false)
		return api.Task{}, err
	}

	s.mu.Lock()
	s.todos = append(s.todos, created)
	s.mu.Unlock()
	return created, nil
}

// Update asks the service to apply a partial update and, on success,
// replaces the cached entry whose ID matches with the server's returned
// task. The response is authoritative: a full replacement, not a merge.
// If no cached entry has that ID the cache is left as-is.
func (s *Store) Update(ctx context.Context, id int64, patch api.TaskPatch) (api.Task, error) {
	s.begin(false)
	updated, err := s.svc.UpdateTask(ctx, id, patch)
	if err != nil {
		s.fail(err, false)
		return api.Task{}, err
	}

	s.mu.Lock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete asks the service to delete a task and, on success, removes the
// cached entry with the matching ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.begin(false)
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.fail(err, false)
		return err
	}

	s.mu.Lock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// ToggleComplete flips the completion flag of the given task through
// Update. It is a thin composition and inherits all of Update's
// guarantees and failure behavior.
func (s *Store) ToggleComplete(ctx context.Context, task api.Task) (api.Task, error) {
	completed := !task.Completed
	return s.Update(ctx, task.ID, api.TaskPatch{Completed: &completed})
}

// Tasks returns a copy of the cached collection in service order.
func (s *Store) Tasks() []api.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Task, len(s.todos))
	copy(out, s.todos)
	return out
}

// Get returns the cached task with the given ID.
func (s *Store) Get(id int64) (api.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.todos {
		if t.ID == id {
			return t, true
		}
	}
	return api.Task{}, false
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error message, empty if the most recent
// operation succeeded. A single slot: concurrent operations overwrite it,
// last write wins.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// begin clears the error slot at the start of an operation and raises the
// loading flag for reads.
func (s *Store) begin(loading bool) {
	s.mu.Lock()
	s.lastErr = ""
	if loading {
		s.loading = true
	}
	s.mu.Unlock()
}

// fail records the error and settles the loading flag.
func (s *Store) fail(err error, loading bool) {
	s.mu.Lock()
	s.lastErr = err.Error()
	if loading {
		s.loading = false
	}
	s.mu.Unlock()
}
