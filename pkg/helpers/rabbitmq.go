package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errors.New("publish not acknowledged by broker")

// RabbitPublisher wraps an AMQP channel and queue for publishing messages.
// A dropped connection or channel is redialled on the next publish.
type RabbitPublisher struct {
	Queue string

	dial func() (*amqp.Connection, *amqp.Channel, error)

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialQueue opens a connection and channel and declares the durable queue.
// Both the API publisher and the email worker go through it so they agree on
// queue arguments.
func DialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	p := &RabbitPublisher{Queue: queue}
	p.dial = func() (*amqp.Connection, *amqp.Channel, error) {
		return dialConfirming(url, queue)
	}
	if _, err := p.channel(); err != nil {
		return nil, err
	}
	return p, nil
}

// dialConfirming opens the queue with publisher confirms, so PublishJSON can
// report broker-side rejection.
func dialConfirming(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, ch, err := DialQueue(url, queue)
	if err != nil {
		return nil, nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// channel returns the live channel, redialling when the broker dropped it.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()
	conn, ch, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// reset drops ch so the next publish redials, unless another caller already
// replaced it.
func (p *RabbitPublisher) reset(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == ch {
		p.closeLocked()
	}
}

func (p *RabbitPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

// PublishJSON publishes a JSON-encoded message to the default queue and waits
// for the broker to confirm it.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	err = p.publish(ctx, b)
	if errors.Is(err, amqp.ErrClosed) {
		// the broker went away since the last publish; one fresh attempt
		err = p.publish(ctx, b)
	}
	return err
}

func (p *RabbitPublisher) publish(ctx context.Context, b []byte) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	conf, err := ch.PublishWithDeferredConfirmWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
	if err != nil {
		if errors.Is(err, amqp.ErrClosed) {
			p.reset(ch)
		}
		return err
	}
	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrPublishNacked
	}
	return nil
}
