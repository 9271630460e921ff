package hub

import "sync"

// Registry is the process-wide presence map from username to the connection
// identifier currently speaking for that user. It is rebuilt from zero on
// restart; nothing here is persisted.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]string),
	}
}

// Register inserts or overwrites the mapping for username. A later
// registration for the same username replaces the earlier connection id
// (last writer wins). It never fails.
func (r *Registry) Register(username, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[username] = connID
}

// Deregister removes the mapping for username. Removing an absent username
// is a no-op, not an error.
func (r *Registry) Deregister(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, username)
}

// Lookup returns the connection id registered for username, if any.
func (r *Registry) Lookup(username string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.conns[username]
	return connID, ok
}

// Usernames returns a snapshot of all currently registered usernames.
// Order is not significant.
func (r *Registry) Usernames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.conns))
	for name := range r.conns {
		names = append(names, name)
	}
	return names
}
