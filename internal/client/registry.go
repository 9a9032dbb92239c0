package client

import (
	"errors"
	"sync"
)

var ErrClientExists = errors.New("client already exists")

// Registry keeps the clients of a running process.
type Registry struct {
	mu sync.RWMutex
	m  map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{m: map[string]*Client{}}
}

func (r *Registry) Add(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[c.ID]; ok {
		return ErrClientExists
	}
	r.m[c.ID] = c
	return nil
}

func (r *Registry) Get(id string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[id]
	return c, ok
}
