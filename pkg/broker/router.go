package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	logging "interview-service/pkg/logger/pkg"
)

// Router holds the handlers of a Server and dispatches decoded packets to them.
// Transports embed it.
type Router struct {
	mu       sync.RWMutex
	messages map[string]Handler
	events   map[string][]EventHandler
}

func NewRouter() *Router {
	return &Router{
		messages: map[string]Handler{},
		events:   map[string][]EventHandler{},
	}
}

func (r *Router) HandleMessage(pattern string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[pattern] = h
}

func (r *Router) HandleEvent(pattern string, h EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[pattern] = append(r.events[pattern], h)
}

func (r *Router) HasMessage(pattern string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.messages[pattern]
	return ok
}

func (r *Router) HasEvent(pattern string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events[pattern]) > 0
}

// Patterns lists every pattern with a message or event handler.
func (r *Router) Patterns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	for p := range r.messages {
		seen[p] = struct{}{}
	}
	for p := range r.events {
		seen[p] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Reply runs the message handler for a request and builds the reply packet.
// Handler errors and panics are carried in the err field.
func (r *Router) Reply(ctx context.Context, p *Packet) (reply *Reply) {
	reply = &Reply{ID: p.ID, IsDisposed: true}

	r.mu.RLock()
	h, ok := r.messages[p.Pattern]
	r.mu.RUnlock()
	if !ok {
		reply.Err = ErrNoHandler.Error()
		return reply
	}

	defer func() {
		if rec := recover(); rec != nil {
			logging.Logger(ctx).Error("message handler panicked", zap.String("pattern", p.Pattern), zap.Any("panic", rec))
			reply.Response = nil
			reply.Err = fmt.Sprint(rec)
		}
	}()

	res, err := h(ctx, p.Data)
	if err != nil {
		reply.Err = err.Error()
		return reply
	}
	raw, err := json.Marshal(res)
	if err != nil {
		reply.Err = err.Error()
		return reply
	}
	reply.Response = raw
	return reply
}

// Dispatch runs every event handler registered for the packet's pattern.
func (r *Router) Dispatch(ctx context.Context, p *Packet) {
	r.mu.RLock()
	hs := append([]EventHandler(nil), r.events[p.Pattern]...)
	r.mu.RUnlock()

	for _, h := range hs {
		if err := h(ctx, p.Data); err != nil {
			logging.Logger(ctx).Error("event handler failed", zap.String("pattern", p.Pattern), zap.Error(err))
		}
	}
}
