package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"interview-service/pkg/broker"
	logging "interview-service/pkg/logger/pkg"
)

// directReplyTo is RabbitMQ's pseudo-queue for RPC replies without a reply queue.
const directReplyTo = "amq.rabbitmq.reply-to"

type Config struct {
	Address       string
	Port          int32
	Username      string
	Password      string
	ConsumeQueue  string
	PublicQueue   string
	Routes        map[string]string
	MaxConsumer   int32
	ExpireTime    int32
	RetryAttempts int
	RetryDelay    time.Duration
}

func ReadConfig() *Config {
	return &Config{
		Address:       viper.GetString("rabbitmq.address"),
		Port:          viper.GetInt32("rabbitmq.port"),
		Username:      viper.GetString("rabbitmq.username"),
		Password:      viper.GetString("rabbitmq.password"),
		ConsumeQueue:  viper.GetString("rabbitmq.consume_queue"),
		PublicQueue:   viper.GetString("rabbitmq.public_queue"),
		Routes:        viper.GetStringMapString("rabbitmq.routes"),
		MaxConsumer:   viper.GetInt32("rabbitmq.max_consumer"),
		ExpireTime:    viper.GetInt32("rabbitmq.expire_time"),
		RetryAttempts: viper.GetInt("bus.retry_attempts"),
		RetryDelay:    viper.GetDuration("bus.retry_delay"),
	}
}

func (c *Config) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.Username, c.Password, c.Address, c.Port)
}

// Queue returns the queue a pattern is published to: its configured route,
// else the public queue.
func (c *Config) Queue(pattern string) string {
	if q, ok := c.Routes[pattern]; ok && q != "" {
		return q
	}
	return c.PublicQueue
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Rabbit is a broker over RabbitMQ queues. Requests carry a correlation id
// and are answered through direct reply-to.
type Rabbit struct {
	*broker.Router

	cfg     *Config
	conn    *amqp.Connection
	pubMu   sync.Mutex
	pub     publisher
	pubCh   *amqp.Channel
	pending *broker.Pending
}

func New(ctx context.Context, cfg *Config) (*Rabbit, error) {
	var conn *amqp.Connection
	err := broker.Retry(ctx, cfg.RetryAttempts, cfg.RetryDelay, func() error {
		c, err := amqp.Dial(cfg.URL())
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Logger(ctx).Info("Connected to RabbitMQ", zap.String("address", cfg.Address))

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(cfg.PublicQueue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	// Direct reply-to requires consuming on the publishing channel before the first request.
	replies, err := ch.Consume(directReplyTo, "", true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}

	r := &Rabbit{
		Router:  broker.NewRouter(),
		cfg:     cfg,
		conn:    conn,
		pub:     ch,
		pubCh:   ch,
		pending: broker.NewPending(),
	}
	go r.readReplies(replies)
	return r, nil
}

func (r *Rabbit) Send(ctx context.Context, pattern string, data any) (json.RawMessage, error) {
	id, ch := r.pending.Add()
	p, err := broker.NewRequest(pattern, id, data)
	if err != nil {
		r.pending.Remove(id)
		return nil, err
	}
	body, err := json.Marshal(p)
	if err != nil {
		r.pending.Remove(id)
		return nil, err
	}

	err = r.publish(ctx, r.cfg.Queue(pattern), amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: id,
		ReplyTo:       directReplyTo,
		Body:          body,
	})
	if err != nil {
		r.pending.Remove(id)
		return nil, err
	}
	return r.pending.Wait(ctx, pattern, id, ch)
}

func (r *Rabbit) Emit(ctx context.Context, pattern string, data any) error {
	p, err := broker.NewEvent(pattern, data)
	if err != nil {
		return err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}
	if r.cfg.ExpireTime > 0 {
		msg.Expiration = fmt.Sprintf("%d", r.cfg.ExpireTime)
	}
	if err := r.publish(ctx, r.cfg.Queue(pattern), msg); err != nil {
		return err
	}

	logging.Logger(ctx).Debug("Sent", zap.String("pattern", pattern))
	return nil
}

// Listen consumes the service queue until ctx is done.
func (r *Rabbit) Listen(ctx context.Context) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	maxConsumer := int(r.cfg.MaxConsumer)
	if maxConsumer <= 0 {
		maxConsumer = 1
	}
	if err := ch.Qos(maxConsumer, 0, false); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(r.cfg.ConsumeQueue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	logging.Logger(ctx).Info("Listening on RabbitMQ", zap.String("queue", q.Name), zap.Strings("patterns", r.Patterns()))

	sem := make(chan struct{}, maxConsumer)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return broker.ErrClosed
			}
			sem <- struct{}{}
			go r.processMessage(ctx, msg, sem)
		}
	}
}

func (r *Rabbit) Ping(context.Context) error {
	if r.conn == nil || r.conn.IsClosed() {
		return broker.ErrClosed
	}
	return nil
}

func (r *Rabbit) Close() error {
	if r.pubCh != nil {
		_ = r.pubCh.Close()
	}
	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}
	return r.conn.Close()
}

func (r *Rabbit) publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	return r.pub.PublishWithContext(ctx, "", queue, false, false, msg)
}

func (r *Rabbit) readReplies(deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		var reply broker.Reply
		if err := json.Unmarshal(d.Body, &reply); err != nil {
			logging.Logger(context.TODO()).Warn("Dropping malformed reply", zap.Error(err))
			continue
		}
		if reply.ID == "" {
			reply.ID = d.CorrelationId
		}
		r.pending.Resolve(&reply)
	}
}

func (r *Rabbit) processMessage(ctx context.Context, msg amqp.Delivery, sem chan struct{}) {
	defer func() { <-sem }()

	var p broker.Packet
	if err := json.Unmarshal(msg.Body, &p); err != nil {
		logging.Logger(ctx).Error("Dropping malformed message", zap.Error(err))
		msg.Nack(false, false)
		return
	}

	if msg.ReplyTo == "" {
		r.Dispatch(ctx, &p)
		msg.Ack(false)
		return
	}

	if p.ID == "" {
		p.ID = msg.CorrelationId
	}
	ctx = logging.WithRequestID(ctx, p.ID)
	reply := r.Reply(ctx, &p)
	body, err := json.Marshal(reply)
	if err == nil {
		err = r.publish(ctx, msg.ReplyTo, amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: msg.CorrelationId,
			Body:          body,
		})
	}
	if err != nil {
		logging.Logger(ctx).Error("Failed to reply", zap.String("pattern", p.Pattern), zap.Error(err))
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
