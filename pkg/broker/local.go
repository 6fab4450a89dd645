package broker

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/google/uuid"
)

// Local is an in-process broker. Requests are answered by the handlers
// registered on the same instance, and events are dispatched synchronously.
// Payloads still travel JSON-encoded so handlers see the same bytes as on a real bus.
type Local struct {
	*Router
	closed atomic.Bool
}

func NewLocal() *Local {
	return &Local{Router: NewRouter()}
}

func (l *Local) Send(ctx context.Context, pattern string, data any) (json.RawMessage, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	p, err := NewRequest(pattern, uuid.NewString(), data)
	if err != nil {
		return nil, err
	}

	done := make(chan *Reply, 1)
	go func() { done <- l.Reply(ctx, p) }()

	select {
	case r := <-done:
		return r.Result(pattern)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Local) Emit(ctx context.Context, pattern string, data any) error {
	if l.closed.Load() {
		return ErrClosed
	}
	p, err := NewEvent(pattern, data)
	if err != nil {
		return err
	}
	l.Dispatch(ctx, p)
	return nil
}

func (l *Local) Listen(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (l *Local) Ping(context.Context) error {
	if l.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (l *Local) Close() error {
	l.closed.Store(true)
	return nil
}
