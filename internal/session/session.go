package session

import "sync"

// LoginPath is where the client is sent when the session is invalidated.
const LoginPath = "/login"

// RedirectFunc is the navigation primitive supplied by the surrounding
// application. The manager calls it with LoginPath whenever the session
// is invalidated by the service.
type RedirectFunc func(path string)

// Manager owns the client-side authentication state. All fields are
// derived from the TokenStore; the manager is the only component that
// writes to it besides the gateway's 401 reaction, which is routed back
// here through Invalidate.
type Manager struct {
	mu       sync.Mutex
	store    TokenStore
	redirect RedirectFunc

	token         string
	authenticated bool
	loading       bool
}

// NewManager creates a Manager in its pre-restore state: loading,
// unauthenticated, no token. Call Initialize to restore from the store.
// redirect may be nil if no navigation is wired.
func NewManager(store TokenStore, redirect RedirectFunc) *Manager {
	return &Manager{
		store:    store,
		redirect: redirect,
		loading:  true,
	}
}

// Initialize restores session state from the token store. It always ends
// the loading phase, whether or not a token was found. Safe to call again
// to re-derive state from the store.
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, ok := m.store.Get(); ok {
		m.token = token
		m.authenticated = true
	} else {
		m.token = ""
		m.authenticated = false
	}
	m.loading = false
}

// Login persists the token and marks the session authenticated. The token
// format is not validated here; the service accepts or rejects it on the
// next call.
func (m *Manager) Login(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Set(token)
	m.token = token
	m.authenticated = true
}

// Logout clears the persisted token and resets session state. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear()
	m.token = ""
	m.authenticated = false
}

// Invalidate is the session-invalidated signal target. The gateway calls
// it on any authorization failure, regardless of which operation tripped
// it. It clears the session like Logout and then navigates to the login
// entry point. Safe to call concurrently and repeatedly, including while
// other operations are in flight.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.store.Clear()
	m.token = ""
	m.authenticated = false
	redirect := m.redirect
	m.mu.Unlock()

	if redirect != nil {
		redirect(LoginPath)
	}
}

// Token returns the current in-memory token, or false if absent.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// IsAuthenticated reports whether a token is present and was accepted at
// last check.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Loading reports whether the initial restore has not yet completed.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
