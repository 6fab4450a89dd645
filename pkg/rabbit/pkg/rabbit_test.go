package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-service/pkg/broker"
)

const (
	timeoutWait = time.Second
	tick        = 5 * time.Millisecond
)

type published struct {
	key string
	msg amqp.Publishing
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{key: key, msg: msg})
	return nil
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}
func (a *fakeAck) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}

func newTestRabbit(pub publisher) *Rabbit {
	return &Rabbit{
		Router: broker.NewRouter(),
		cfg: &Config{
			PublicQueue: "interview_events",
			Routes:      map[string]string{"verify_enterprise": "enterprise_service"},
			ExpireTime:  60000,
		},
		pub:     pub,
		pending: broker.NewPending(),
	}
}

func TestConfig_QueueAndURL(t *testing.T) {
	cfg := &Config{
		Address: "mq", Port: 5672, Username: "u", Password: "p",
		PublicQueue: "events",
		Routes:      map[string]string{"verify_job_role": "roles"},
	}
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.URL())
	assert.Equal(t, "roles", cfg.Queue("verify_job_role"))
	assert.Equal(t, "events", cfg.Queue("question_created"))
}

func TestProcessMessage_Request(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRabbit(pub)
	r.HandleMessage("verify_question", func(_ context.Context, data json.RawMessage) (any, error) {
		var id string
		require.NoError(t, json.Unmarshal(data, &id))
		return map[string]bool{"exists": id == "q-1"}, nil
	})

	ack := &fakeAck{}
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	r.processMessage(context.Background(), amqp.Delivery{
		Acknowledger:  ack,
		ReplyTo:       "amq.rabbitmq.reply-to.abc",
		CorrelationId: "corr-1",
		Body:          []byte(`{"pattern":"verify_question","data":"q-1","id":"corr-1"}`),
	}, sem)

	assert.True(t, ack.acked)
	assert.Empty(t, sem)
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "amq.rabbitmq.reply-to.abc", pub.sent[0].key)
	assert.Equal(t, "corr-1", pub.sent[0].msg.CorrelationId)

	var reply broker.Reply
	require.NoError(t, json.Unmarshal(pub.sent[0].msg.Body, &reply))
	assert.Equal(t, "corr-1", reply.ID)
	assert.JSONEq(t, `{"exists":true}`, string(reply.Response))
	assert.True(t, reply.IsDisposed)
}

func TestProcessMessage_UnknownPatternRepliesWithError(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRabbit(pub)

	ack := &fakeAck{}
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	r.processMessage(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		ReplyTo:      "reply",
		Body:         []byte(`{"pattern":"nope","data":null,"id":"1"}`),
	}, sem)

	require.Len(t, pub.sent, 1)
	var reply broker.Reply
	require.NoError(t, json.Unmarshal(pub.sent[0].msg.Body, &reply))
	assert.Equal(t, broker.ErrNoHandler.Error(), reply.Err)
	assert.True(t, ack.acked)
}

func TestProcessMessage_ReplyFailureRequeues(t *testing.T) {
	r := newTestRabbit(&fakePublisher{err: errors.New("channel closed")})
	r.HandleMessage("verify_report", func(context.Context, json.RawMessage) (any, error) { return true, nil })

	ack := &fakeAck{}
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	r.processMessage(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		ReplyTo:      "reply",
		Body:         []byte(`{"pattern":"verify_report","data":"r","id":"1"}`),
	}, sem)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestProcessMessage_EventAndMalformed(t *testing.T) {
	r := newTestRabbit(&fakePublisher{})
	var got string
	r.HandleEvent("interview_created", func(_ context.Context, data json.RawMessage) error {
		got = string(data)
		return nil
	})

	ack := &fakeAck{}
	sem := make(chan struct{}, 2)
	sem <- struct{}{}
	r.processMessage(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"pattern":"interview_created","data":{"interview":{}}}`),
	}, sem)
	assert.True(t, ack.acked)
	assert.JSONEq(t, `{"interview":{}}`, got)

	bad := &fakeAck{}
	sem <- struct{}{}
	r.processMessage(context.Background(), amqp.Delivery{Acknowledger: bad, Body: []byte(`{`)}, sem)
	assert.True(t, bad.nacked)
	assert.False(t, bad.requeued)
}

func TestSend_RoutesAndResolves(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRabbit(pub)

	done := make(chan json.RawMessage, 1)
	go func() {
		res, err := r.Send(context.Background(), "verify_enterprise", "e-1")
		assert.NoError(t, err)
		done <- res
	}()

	require.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.sent) == 1
	}, timeoutWait, tick)

	pub.mu.Lock()
	sent := pub.sent[0]
	pub.mu.Unlock()
	assert.Equal(t, "enterprise_service", sent.key)
	assert.Equal(t, directReplyTo, sent.msg.ReplyTo)

	replies := make(chan amqp.Delivery, 1)
	replies <- amqp.Delivery{CorrelationId: sent.msg.CorrelationId, Body: []byte(`{"response":{"exists":true},"isDisposed":true}`)}
	close(replies)
	r.readReplies(replies)

	assert.JSONEq(t, `{"exists":true}`, string(<-done))
}

func TestEmit_PublicQueueWithExpiration(t *testing.T) {
	pub := &fakePublisher{}
	r := newTestRabbit(pub)

	require.NoError(t, r.Emit(context.Background(), "question_deleted", map[string]string{"question_id": "q"}))
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "interview_events", pub.sent[0].key)
	assert.Equal(t, "60000", pub.sent[0].msg.Expiration)
	assert.Empty(t, pub.sent[0].msg.ReplyTo)
	assert.JSONEq(t, `{"pattern":"question_deleted","data":{"question_id":"q"}}`, string(pub.sent[0].msg.Body))
}
