package redis

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"interview-service/pkg/broker"
	logging "interview-service/pkg/logger/pkg"
)

const replySuffix = ".reply"

// subscription is settled once: confirmed is closed when Redis acknowledges
// the channel or when subscribing failed, in which case err is set first.
type subscription struct {
	confirmed chan struct{}
	err       error
}

// Bus is a broker over Redis pub/sub. Requests are published on the channel
// named after their pattern and answered on "<pattern>.reply".
type Bus struct {
	*broker.Router

	client  *redis.Client
	pubsub  *redis.PubSub
	pending *broker.Pending

	ctx    context.Context
	cancel context.CancelFunc

	// subscribeFn is pubsub.Subscribe, swapped out in tests.
	subscribeFn func(ctx context.Context, channels ...string) error

	mu      sync.Mutex
	subs    map[string]*subscription
	replies map[string]struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewBus takes ownership of client and starts reading subscriptions.
func NewBus(client *redis.Client) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		Router:  broker.NewRouter(),
		client:  client,
		pubsub:  client.Subscribe(ctx),
		pending: broker.NewPending(),
		ctx:     ctx,
		cancel:  cancel,
		subs:    map[string]*subscription{},
		replies: map[string]struct{}{},
		done:    make(chan struct{}),
	}
	b.subscribeFn = b.pubsub.Subscribe
	go b.loop(b.pubsub.ChannelWithSubscriptions())
	return b
}

func (b *Bus) Send(ctx context.Context, pattern string, data any) (json.RawMessage, error) {
	if err := b.subscribe(ctx, pattern+replySuffix, true); err != nil {
		return nil, err
	}

	id, ch := b.pending.Add()
	p, err := broker.NewRequest(pattern, id, data)
	if err != nil {
		b.pending.Remove(id)
		return nil, err
	}
	if err := b.publish(ctx, pattern, p); err != nil {
		b.pending.Remove(id)
		return nil, err
	}
	return b.pending.Wait(ctx, pattern, id, ch)
}

func (b *Bus) Emit(ctx context.Context, pattern string, data any) error {
	p, err := broker.NewEvent(pattern, data)
	if err != nil {
		return err
	}
	return b.publish(ctx, pattern, p)
}

// Listen subscribes to every registered pattern and serves until ctx is done.
func (b *Bus) Listen(ctx context.Context) error {
	for _, pattern := range b.Patterns() {
		if err := b.subscribe(ctx, pattern, false); err != nil {
			return err
		}
	}
	logging.Logger(ctx).Info("Listening on Redis bus", zap.Strings("patterns", b.Patterns()))

	select {
	case <-ctx.Done():
	case <-b.done:
	}
	return nil
}

func (b *Bus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Bus) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.cancel()
		if e := b.pubsub.Close(); e != nil {
			err = e
		}
		if e := b.client.Close(); e != nil && err == nil {
			err = e
		}
		<-b.done
	})
	return err
}

func (b *Bus) publish(ctx context.Context, channel string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, raw).Err()
}

// subscribe adds channel to the shared subscription and waits for Redis to
// confirm it. Concurrent callers for the same channel share one attempt.
func (b *Bus) subscribe(ctx context.Context, channel string, reply bool) error {
	b.mu.Lock()
	sub, ok := b.subs[channel]
	if !ok {
		sub = &subscription{confirmed: make(chan struct{})}
		b.subs[channel] = sub
		if reply {
			b.replies[channel] = struct{}{}
		}
	}
	b.mu.Unlock()

	if !ok {
		if err := b.subscribeFn(ctx, channel); err != nil {
			b.mu.Lock()
			delete(b.subs, channel)
			delete(b.replies, channel)
			sub.err = err
			close(sub.confirmed)
			b.mu.Unlock()
			return err
		}
	}

	select {
	case <-sub.confirmed:
		return sub.err
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return broker.ErrClosed
	}
}

func (b *Bus) confirm(channel string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[channel]; ok {
		select {
		case <-sub.confirmed:
		default:
			close(sub.confirmed)
		}
	}
}

func (b *Bus) isReply(channel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.replies[channel]
	return ok
}

func (b *Bus) loop(msgs <-chan interface{}) {
	defer close(b.done)
	for m := range msgs {
		switch m := m.(type) {
		case *redis.Subscription:
			if m.Kind == "subscribe" {
				b.confirm(m.Channel)
			}
		case *redis.Message:
			b.handle(m)
		}
	}
}

func (b *Bus) handle(m *redis.Message) {
	log := logging.Logger(b.ctx)

	if b.isReply(m.Channel) {
		var r broker.Reply
		if err := json.Unmarshal([]byte(m.Payload), &r); err != nil {
			log.Warn("Dropping malformed reply", zap.String("channel", m.Channel), zap.Error(err))
			return
		}
		b.pending.Resolve(&r)
		return
	}

	var p broker.Packet
	if err := json.Unmarshal([]byte(m.Payload), &p); err != nil {
		log.Warn("Dropping malformed packet", zap.String("channel", m.Channel), zap.Error(err))
		return
	}
	if p.Pattern == "" {
		p.Pattern = strings.TrimSuffix(m.Channel, replySuffix)
	}

	if p.ID != "" {
		if !b.HasMessage(p.Pattern) {
			return
		}
		go func() {
			ctx := logging.WithRequestID(b.ctx, p.ID)
			r := b.Reply(ctx, &p)
			if err := b.publish(ctx, p.Pattern+replySuffix, r); err != nil {
				logging.Logger(ctx).Error("Failed to publish reply", zap.String("pattern", p.Pattern), zap.Error(err))
			}
		}()
		return
	}
	go b.Dispatch(b.ctx, &p)
}
