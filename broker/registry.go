package broker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadkit/igbroker/instagram"
)

// Registry holds at most one live client per account. Creation is lazy and
// idempotent: concurrent callers for the same account observe the same
// client instance.
type Registry struct {
	factory instagram.Factory
	base    instagram.Options

	mu      sync.Mutex
	clients map[string]instagram.Client
}

// NewRegistry builds a registry that creates clients through factory using
// base options. Each created client gets its own device identifier.
func NewRegistry(factory instagram.Factory, base instagram.Options) *Registry {
	return &Registry{
		factory: factory,
		base:    base,
		clients: make(map[string]instagram.Client),
	}
}

// GetOrCreate returns the live client for accountID, creating it on first use.
func (r *Registry) GetOrCreate(accountID string) instagram.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cl, ok := r.clients[accountID]; ok {
		return cl
	}
	opts := r.base
	if opts.DeviceID == "" {
		opts.DeviceID = uuid.NewString()
	}
	if opts.DelayRange == [2]time.Duration{} {
		opts.DelayRange = [2]time.Duration{0, time.Second}
	}
	cl := r.factory(opts)
	r.clients[accountID] = cl
	return cl
}

// Get returns the live client for accountID, if any.
func (r *Registry) Get(accountID string) (instagram.Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cl, ok := r.clients[accountID]
	return cl, ok
}

// Remove drops the live client for accountID.
func (r *Registry) Remove(accountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, accountID)
}

// Len reports how many accounts currently hold a live client.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
