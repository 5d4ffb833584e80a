package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	baseBackoff = 1 * time.Second
	maxBackoff  = 30 * time.Second
)

// Handler processes one decoded message. A returned error requeues it.
type Handler func(ctx context.Context, msg *ActivityMessage) error

// Consumer keeps a subscription to the activity queue alive across broker restarts.
type Consumer struct {
	url          string
	exchangeName string
	queueName    string
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewConsumer(url, exchangeName, queueName string) *Consumer {
	return &Consumer{
		url:          url,
		exchangeName: exchangeName,
		queueName:    queueName,
		sleep:        sleepContext,
	}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	attempt := 0
	for {
		err := c.consumeOnce(ctx, handle, func() { attempt = 0 })
		if ctx.Err() != nil {
			return ctx.Err()
		}
		wait := exponentialBackoff(attempt)
		slog.WarnContext(ctx, "Activity consumer disconnected, retrying",
			"error", err,
			"attempt", attempt+1,
			"backoff", wait,
			"connection_error", isConnectionError(err))
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
		attempt++
	}
}

func (c *Consumer) consumeOnce(ctx context.Context, handle Handler, connected func()) error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := setup(ch, c.exchangeName, c.queueName); err != nil {
		return err
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := ch.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	connected()
	slog.InfoContext(ctx, "Started consuming activity messages", "queue", c.queueName)

	closed := conn.NotifyClose(make(chan *amqp091.Error, 1))
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr == nil {
				return amqp091.ErrClosed
			}
			return amqpErr
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			settle(ctx, delivery.Body, delivery, handle)
		}
	}
}

// acknowledger is the subset of amqp091.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// settle runs handle on body and acks or nacks the delivery. Malformed bodies
// are dropped, handler failures are requeued.
func settle(ctx context.Context, body []byte, ack acknowledger, handle Handler) {
	msg, err := ActivityMessageFromJSON(body)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping malformed activity message", "error", err)
		ack.Nack(false, false)
		return
	}

	if err := handle(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to handle activity message",
			"error", err,
			"event_id", msg.EventID)
		ack.Nack(false, true)
		return
	}

	ack.Ack(false)
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return maxBackoff
	}
	d := baseBackoff << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "eof", "broken pipe", "channel/connection is not open"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
