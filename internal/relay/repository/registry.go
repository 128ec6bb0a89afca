package repository

import "presence_relay_service/internal/relay/domain"

// Registry username -> connection, kept in join order.
// Not safe for concurrent use; SessionDirectory serializes access.
type Registry struct {
	order    []string
	bindings map[string]domain.ConnectionID
}

// NewRegistry create an empty Registry
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]domain.ConnectionID)}
}

// Join bind username to conn. Last writer wins; a rebind keeps the original position.
// Returns the connection that held the username before, if any.
func (r *Registry) Join(username string, conn domain.ConnectionID) (domain.ConnectionID, bool) {
	previous, ok := r.bindings[username]
	if !ok {
		r.order = append(r.order, username)
	}
	r.bindings[username] = conn
	return previous, ok
}

// Lookup resolve username to its live connection
func (r *Registry) Lookup(username string) (domain.ConnectionID, bool) {
	conn, ok := r.bindings[username]
	return conn, ok
}

// RemoveByConnection remove the first username bound to conn
func (r *Registry) RemoveByConnection(conn domain.ConnectionID) (string, bool) {
	for i, username := range r.order {
		if r.bindings[username] != conn {
			continue
		}
		delete(r.bindings, username)
		r.order = append(r.order[:i], r.order[i+1:]...)
		return username, true
	}
	return "", false
}

// Usernames online usernames in registry order, never nil
func (r *Registry) Usernames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len number of online usernames
func (r *Registry) Len() int {
	return len(r.order)
}
