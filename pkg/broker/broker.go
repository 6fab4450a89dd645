// Package broker defines request/reply and event messaging over a shared bus.
//
// Packets follow the NestJS microservice wire format so that this service can
// talk to Nest peers over Redis or RabbitMQ: requests are {pattern, data, id},
// replies are {id, response, err, isDisposed} and events are {pattern, data}.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoHandler = errors.New("There is no matching message handler defined in the remote service.")
	ErrClosed    = errors.New("broker closed")
)

// Packet is a request (ID set) or an event (ID empty).
type Packet struct {
	Pattern string          `json:"pattern"`
	Data    json.RawMessage `json:"data"`
	ID      string          `json:"id,omitempty"`
}

type Reply struct {
	ID         string          `json:"id"`
	Response   json.RawMessage `json:"response,omitempty"`
	Err        any             `json:"err,omitempty"`
	IsDisposed bool            `json:"isDisposed,omitempty"`
}

// RemoteError is the err field of a reply.
type RemoteError struct {
	Pattern string
	Err     any
}

func (e *RemoteError) Error() string {
	switch v := e.Err.(type) {
	case string:
		return fmt.Sprintf("%s: %s", e.Pattern, v)
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return fmt.Sprintf("%s: %s", e.Pattern, msg)
		}
	}
	return fmt.Sprintf("%s: %v", e.Pattern, e.Err)
}

type Handler func(ctx context.Context, data json.RawMessage) (any, error)

type EventHandler func(ctx context.Context, data json.RawMessage) error

type Client interface {
	// Send issues a request and blocks until the reply arrives or ctx ends.
	Send(ctx context.Context, pattern string, data any) (json.RawMessage, error)
	// Emit publishes an event without waiting for consumers.
	Emit(ctx context.Context, pattern string, data any) error
}

type Server interface {
	HandleMessage(pattern string, h Handler)
	HandleEvent(pattern string, h EventHandler)
	// Listen serves registered handlers until ctx is done.
	Listen(ctx context.Context) error
}

type Broker interface {
	Client
	Server
	Ping(ctx context.Context) error
	Close() error
}

func NewRequest(pattern, id string, data any) (*Packet, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", pattern, err)
	}
	return &Packet{Pattern: pattern, Data: raw, ID: id}, nil
}

func NewEvent(pattern string, data any) (*Packet, error) {
	return NewRequest(pattern, "", data)
}

// Result converts a reply into the response payload or a RemoteError.
func (r *Reply) Result(pattern string) (json.RawMessage, error) {
	if r.Err != nil {
		return nil, &RemoteError{Pattern: pattern, Err: r.Err}
	}
	if len(r.Response) == 0 {
		return json.RawMessage("null"), nil
	}
	return r.Response, nil
}
