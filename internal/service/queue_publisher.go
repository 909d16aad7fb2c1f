// Package queue_publisher publishes domain events to RabbitMQ.  Publishing
// never waits on the broker: events are queued in memory and a single
// worker goroutine owns the connection.  A full queue or a closed
// publisher is reported as an error the caller may ignore.
package queue_publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/hufspace/classroom-finder/internal/queue"
)

var (
	// ErrBufferFull is returned when the worker has fallen behind.
	ErrBufferFull = errors.New("event buffer full")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("publisher closed")
)

const (
	defaultBuffer      = 256
	defaultDialTimeout = 5 * time.Second
	maxBackoff         = 30 * time.Second
)

// Publisher queues events and forwards them to the occupancy.reported
// queue from a background worker.  It is safe for concurrent use.
type Publisher struct {
	url         string
	logger      *zap.Logger
	dialTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	events chan q.OccupancyReportedEvent
	done   chan struct{}

	// owned by the worker goroutine
	conn     *amqp.Connection
	ch       *amqp.Channel
	backoff  time.Duration
	nextDial time.Time
}

// Option customises a Publisher.
type Option func(*Publisher)

// WithBuffer sets how many events may wait for the worker.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.events = make(chan q.OccupancyReportedEvent, n)
		}
	}
}

// WithDialTimeout bounds connecting and the AMQP handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.dialTimeout = d
		}
	}
}

// New starts a Publisher for url.  No connection is made until the first
// event arrives.
func New(url string, logger *zap.Logger, opts ...Option) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{
		url:         url,
		logger:      logger.Named("rabbitmq"),
		dialTimeout: defaultDialTimeout,
		events:      make(chan q.OccupancyReportedEvent, defaultBuffer),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

// PublishOccupancyReported queues ev for delivery and returns at once.
func (p *Publisher) PublishOccupancyReported(ctx context.Context, ev q.OccupancyReportedEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.events <- ev:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events, lets the worker finish the queued ones and
// releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	p.mu.Unlock()
	<-p.done
	return nil
}

func (p *Publisher) run() {
	defer close(p.done)
	for ev := range p.events {
		if err := p.send(ev); err != nil {
			p.logger.Warn("publish failed",
				zap.String("event_id", ev.EventID), zap.Error(err))
		}
	}
	p.reset()
}

func (p *Publisher) send(ev q.OccupancyReportedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ch, err := p.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.dialTimeout)
	defer cancel()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.OccupancyQueueName, false, false, pub); err != nil {
		p.reset()
		return err
	}
	return nil
}

// channel returns the cached channel, dialing and declaring the queue when
// needed.  After a failed dial further attempts wait out an exponential
// backoff; events arriving meanwhile are dropped.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if time.Now().Before(p.nextDial) {
		return nil, errors.New("broker unavailable, retrying later")
	}

	ch, err := p.dial()
	if err != nil {
		if p.backoff == 0 {
			p.backoff = time.Second
		} else if p.backoff < maxBackoff {
			p.backoff *= 2
		}
		p.nextDial = time.Now().Add(p.backoff)
		return nil, err
	}
	p.backoff = 0
	p.nextDial = time.Time{}
	return ch, nil
}

func (p *Publisher) dial() (*amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	// durable so reports survive broker restarts
	if _, err := ch.QueueDeclare(q.OccupancyQueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
