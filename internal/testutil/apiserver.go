package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"todocli/internal/api"
)

// APIServer is an httptest fixture speaking the todo service's HTTP
// contract, for exercising the REST client end to end. It hands out
// ValidToken on login and rejects todo calls made without it.
type APIServer struct {
	Server *httptest.Server

	// ValidToken is the only accepted bearer credential.
	ValidToken string

	mu     sync.Mutex
	users  map[string]string
	tasks  []api.Task
	nextID int64

	// LastAuth and LastRequestID record the headers of the most recent
	// todo-route request.
	LastAuth      string
	LastRequestID string
}

// NewAPIServer starts the fixture and registers its shutdown with t.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{
		ValidToken: "valid-token",
		users:      make(map[string]string),
		nextID:     1,
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Route("/todos", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Get("/{id}", s.handleGet)
			r.Patch("/{id}", s.handleUpdate)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the fixture's base URL.
func (s *APIServer) URL() string {
	return s.Server.URL
}

// AddUser seeds an account accepted by the login endpoint.
func (s *APIServer) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// AddTask seeds a task.
func (s *APIServer) AddTask(task api.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	if task.ID >= s.nextID {
		s.nextID = task.ID + 1
	}
}

// Tasks returns a copy of the server-side task collection.
func (s *APIServer) Tasks() []api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *APIServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.LastAuth = r.Header.Get("Authorization")
		s.LastRequestID = r.Header.Get("X-Request-ID")
		token := s.ValidToken
		s.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+token {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	s.users[body.Username] = body.Password

	writeJSON(w, http.StatusCreated, api.User{
		ID:       int64(len(s.users)),
		Username: body.Username,
	})
}

func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.mu.Lock()
	stored, ok := s.users[username]
	token := s.ValidToken
	s.mu.Unlock()

	if !ok || stored != password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *APIServer) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tasks())
}

func (s *APIServer) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Todo not found")
}

func (s *APIServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var fields api.TaskFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "title must not be empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task := api.Task{
		ID:          s.nextID,
		Title:       fields.Title,
		Description: fields.Description,
	}
	s.nextID++
	s.tasks = append(s.tasks, task)
	writeJSON(w, http.StatusCreated, task)
}

func (s *APIServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}
	var patch api.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			s.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			s.tasks[i].Description = *patch.Description
		}
		if patch.Completed != nil {
			s.tasks[i].Completed = *patch.Completed
		}
		writeJSON(w, http.StatusOK, s.tasks[i])
		return
	}
	writeDetail(w, http.StatusNotFound, "Todo not found")
}

func (s *APIServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Todo not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
