package broker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Pending tracks in-flight requests by correlation id until their reply arrives.
type Pending struct {
	mu      sync.Mutex
	waiters map[string]chan *Reply
}

func NewPending() *Pending {
	return &Pending{waiters: map[string]chan *Reply{}}
}

// Add registers a new correlation id and returns it with the channel its reply is delivered on.
func (p *Pending) Add() (string, <-chan *Reply) {
	id := uuid.NewString()
	ch := make(chan *Reply, 1)

	p.mu.Lock()
	p.waiters[id] = ch
	p.mu.Unlock()
	return id, ch
}

// Resolve delivers a reply to its waiter. Unknown or already resolved ids are ignored.
func (p *Pending) Resolve(r *Reply) bool {
	p.mu.Lock()
	ch, ok := p.waiters[r.ID]
	if ok {
		delete(p.waiters, r.ID)
	}
	p.mu.Unlock()

	if !ok {
		return false
	}
	ch <- r
	return true
}

func (p *Pending) Remove(id string) {
	p.mu.Lock()
	delete(p.waiters, id)
	p.mu.Unlock()
}

func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// Wait blocks until the reply for id arrives or ctx ends, and always releases id.
func (p *Pending) Wait(ctx context.Context, pattern, id string, ch <-chan *Reply) (json.RawMessage, error) {
	defer p.Remove(id)
	select {
	case r := <-ch:
		return r.Result(pattern)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
