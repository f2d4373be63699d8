package db

import (
	"context"
	"sync"

	"github.com/verdande/dbgrip/internal/models"
)

// DialFunc constructs a client for a connection config. Tests swap it out
// to avoid real networks.
type DialFunc func(ctx context.Context, cfg models.ConnectionConfig) (Client, error)

// Registry is the single owner of the active client. All access goes
// through its lock; the UI drives it from one goroutine, so the lock's real
// job is making Replace atomic with respect to itself rather than
// arbitrating threads.
type Registry struct {
	mu      sync.Mutex
	clients []Client
	dial    DialFunc
}

// NewRegistry returns an empty registry dialing real engines.
func NewRegistry() *Registry {
	return &Registry{dial: Dial}
}

// NewRegistryWithDial returns a registry using a custom dialer.
func NewRegistryWithDial(dial DialFunc) *Registry {
	return &Registry{dial: dial}
}

// Add dials cfg and appends the client.
func (r *Registry) Add(ctx context.Context, cfg models.ConnectionConfig) error {
	client, err := r.dial(ctx, cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, client)
	return nil
}

// Replace closes every held client and installs a freshly dialed one in a
// single critical section. On dial failure the registry is left empty:
// the old connection pointed at a database the operator is leaving anyway.
func (r *Registry) Replace(ctx context.Context, cfg models.ConnectionConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		c.Close()
	}
	r.clients = nil

	client, err := r.dial(ctx, cfg)
	if err != nil {
		return err
	}
	r.clients = append(r.clients, client)
	return nil
}

// Active returns the current client. Callers use it and let go before
// handing control back to the event loop; no reference outlives the
// handler that fetched it.
func (r *Registry) Active() (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.clients) == 0 {
		return nil, connectionErr("no active connection", nil)
	}
	return r.clients[0], nil
}

// Len reports how many clients are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// CloseAll releases every held client.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		c.Close()
	}
	r.clients = nil
}
