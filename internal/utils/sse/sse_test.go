package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcast(t *testing.T) {
	a := make(chan Event, 1)
	b := make(chan Event) // unbuffered and never read, so it misses events
	RegisterChannel("a", a)
	RegisterChannel("b", b)
	defer UnregisterChannel("a")
	defer UnregisterChannel("b")

	n := Broadcast(Event{"pattern": "question_created"})
	assert.Equal(t, 1, n)
	assert.Equal(t, "question_created", (<-a)["pattern"])
}

func TestUnregisterChannel(t *testing.T) {
	ch := make(chan Event, 1)
	RegisterChannel("s-1", ch)
	assert.Equal(t, 1, Broadcast(Event{"n": 1}))

	UnregisterChannel("s-1")
	assert.Equal(t, 0, Broadcast(Event{"n": 2}))
	assert.Equal(t, 1, (<-ch)["n"])
}
