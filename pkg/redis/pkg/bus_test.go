package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) (*Bus, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := New(context.Background(), &Config{Address: mr.Addr(), Debug: true})
	require.NoError(t, err)

	b := NewBus(client)
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func listen(t *testing.T, b *Bus, patterns ...string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = b.Listen(ctx) }()

	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, p := range patterns {
			sub, ok := b.subs[p]
			if !ok {
				return false
			}
			select {
			case <-sub.confirmed:
			default:
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func TestNew_PingFailure(t *testing.T) {
	_, err := New(context.Background(), &Config{Address: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	assert.Error(t, err)
}

func TestBus_RequestReply(t *testing.T) {
	server, _ := newTestBus(t)
	server.HandleMessage("verify_interview", func(_ context.Context, data json.RawMessage) (any, error) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return nil, err
		}
		return map[string]bool{"exists": id == "i-1"}, nil
	})
	listen(t, server, "verify_interview")

	client := newTestBusOn(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := client.Send(ctx, "verify_interview", "i-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"exists":true}`, string(res))

	res, err = client.Send(ctx, "verify_interview", "missing")
	require.NoError(t, err)
	assert.JSONEq(t, `{"exists":false}`, string(res))
}

func TestBus_SendTimesOutWithoutResponder(t *testing.T) {
	b, _ := newTestBus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := b.Send(ctx, "verify_enterprise", "e-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, b.pending.Len())
}

func TestBus_Events(t *testing.T) {
	server, _ := newTestBus(t)
	got := make(chan string, 1)
	server.HandleEvent("interview_created", func(_ context.Context, data json.RawMessage) error {
		got <- string(data)
		return nil
	})
	listen(t, server, "interview_created")

	client := newTestBusOn(t, server)
	require.NoError(t, client.Emit(context.Background(), "interview_created", map[string]string{"interview_id": "i-1"}))

	select {
	case data := <-got:
		assert.JSONEq(t, `{"interview_id":"i-1"}`, data)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_NestWireFormat(t *testing.T) {
	b, mr := newTestBus(t)
	b.HandleMessage("verify_report", func(context.Context, json.RawMessage) (any, error) {
		return map[string]bool{"exists": true}, nil
	})
	listen(t, b, "verify_report")

	client, err := New(context.Background(), &Config{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, "verify_report.reply")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, "verify_report", `{"pattern":"verify_report","data":"r-1","id":"abc"}`).Err())

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","response":{"exists":true},"isDisposed":true}`, msg.Payload)
}

func TestBus_Ping(t *testing.T) {
	b, _ := newTestBus(t)
	require.NoError(t, b.Ping(context.Background()))
}

// newTestBusOn builds a second bus against the same server as b.
func newTestBusOn(t *testing.T, b *Bus) *Bus {
	t.Helper()
	client, err := New(context.Background(), &Config{Address: b.client.Options().Addr})
	require.NoError(t, err)
	other := NewBus(client)
	t.Cleanup(func() { _ = other.Close() })
	return other
}

func TestBus_SubscribeFailureReachesWaiters(t *testing.T) {
	b, _ := newTestBus(t)
	gate := make(chan struct{})
	failure := errors.New("subscribe refused")
	b.subscribeFn = func(context.Context, ...string) error {
		<-gate
		return failure
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const callers = 3
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = b.Send(ctx, "verify_interview", "id")
		}(i)
	}
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		_, ok := b.subs["verify_interview.reply"]
		return ok
	}, time.Second, 5*time.Millisecond)

	start := time.Now()
	close(gate)
	wg.Wait()

	assert.Less(t, time.Since(start), time.Second)
	for _, err := range errs {
		assert.ErrorIs(t, err, failure)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.NotContains(t, b.subs, "verify_interview.reply")
}
