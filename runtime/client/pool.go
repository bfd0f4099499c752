package client

import (
	"context"
	"errors"
	"sync"
)

// ErrNotConnected is returned when an operation needs a connection and
// the pool holds none.
var ErrNotConnected = errors.New("no active database connection")

// Pool is an explicit registry of open clients. It replaces ambient
// process-wide connection state: code needing a connection is handed one
// from the pool, never a global.
type Pool struct {
	mu      sync.Mutex
	clients []*Client
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Connect opens a client, verifies the connection and registers it.
func (p *Pool) Connect(ctx context.Context, provider, connectionString string) (*Client, error) {
	c, err := NewClient(provider, connectionString)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	p.Add(c)
	return c, nil
}

// Add registers an already-open client.
func (p *Pool) Add(c *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients = append(p.clients, c)
}

// Current returns the most recently registered client.
func (p *Pool) Current() (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.clients) == 0 {
		return nil, ErrNotConnected
	}
	return p.clients[len(p.clients)-1], nil
}

// Disconnect closes a client and removes it from the pool.
func (p *Pool) Disconnect(ctx context.Context, c *Client) error {
	p.mu.Lock()
	for i, existing := range p.clients {
		if existing == c {
			p.clients = append(p.clients[:i], p.clients[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	return c.Disconnect(ctx)
}

// Close disconnects every registered client, returning the first error.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	clients := p.clients
	p.clients = nil
	p.mu.Unlock()

	var first error
	for _, c := range clients {
		if err := c.Disconnect(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
