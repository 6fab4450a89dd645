package sse

import (
	"sync"
)

// Event is one message pushed to SSE subscribers.
type Event map[string]interface{}

var sseChannels sync.Map // key: subscriber id, value: chan Event

func RegisterChannel(subscriberID string, ch chan Event) {
	sseChannels.Store(subscriberID, ch)
}

func UnregisterChannel(subscriberID string) {
	sseChannels.Delete(subscriberID)
}

// Broadcast offers event to every subscriber and returns how many accepted it.
// Subscribers with a full buffer miss the event.
func Broadcast(event Event) int {
	delivered := 0
	sseChannels.Range(func(key, value any) bool {
		if ch, ok := value.(chan Event); ok {
			select {
			case ch <- event:
				delivered++
			default:
			}
		}
		return true
	})
	return delivered
}
