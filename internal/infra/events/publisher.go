// Package events delivers domain events and rate pushes over RabbitMQ.
// Both queues are durable and messages persistent, so a broker restart
// loses nothing that was acked.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rategrid/internal/domain/event"
	"rategrid/internal/domain/rate"
	"rategrid/internal/infra/repository/converter"
	"rategrid/internal/pkg/config"
	"rategrid/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher owns one connection and one channel. amqp channels are not safe
// for concurrent publishes, so every send holds the mutex; a closed channel
// or connection is reopened on the next send.
type Publisher struct {
	url        string
	eventQueue string
	syncQueue  string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, func(), error) {
	p := &Publisher{
		url:        cfg.URL,
		eventQueue: cfg.Queue,
		syncQueue:  cfg.SyncQueue,
	}
	p.mu.Lock()
	err := p.ensureChannel()
	p.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.ch != nil {
			_ = p.ch.Close()
		}
		if p.conn != nil {
			_ = p.conn.Close()
		}
	}
	return p, cleanup, nil
}

// ensureChannel (re)establishes the connection and channel and declares the
// queues. Callers must hold the mutex.
func (p *Publisher) ensureChannel() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return err
		}
		p.conn = conn
		p.ch = nil
	}
	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return err
		}
		for _, queue := range []string{p.eventQueue, p.syncQueue} {
			if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
				_ = ch.Close()
				return err
			}
		}
		p.ch = ch
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureChannel(); err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *Publisher) Publish(ctx context.Context, events ...event.Event) error {
	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return errs.Wrap(err, "failed to encode event")
		}
		if err := p.publish(ctx, p.eventQueue, body); err != nil {
			return errs.Wrap(err, "failed to publish event")
		}
	}
	return nil
}

// ratePushMessage is what a property-side agent consumes to apply a
// distributed rate locally.
type ratePushMessage struct {
	PropertyID uuid.UUID       `json:"propertyId"`
	RateID     uuid.UUID       `json:"rateId"`
	Version    int64           `json:"version"`
	PushedAt   time.Time       `json:"pushedAt"`
	Rate       json.RawMessage `json:"rate"`
}

// PushRate hands one property its copy of the rate. Broker failures are
// transient; the caller's retry policy decides how hard to insist.
func (p *Publisher) PushRate(ctx context.Context, propertyID uuid.UUID, snap rate.Snapshot) error {
	doc, err := converter.MarshalRateDocument(snap)
	if err != nil {
		return errs.Wrap(err, "failed to encode rate push")
	}
	body, err := json.Marshal(ratePushMessage{
		PropertyID: propertyID,
		RateID:     snap.ID,
		Version:    snap.Version,
		PushedAt:   time.Now().UTC(),
		Rate:       doc,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode rate push")
	}
	if err := p.publish(ctx, p.syncQueue, body); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to push rate"), errs.ErrTransient)
	}
	return nil
}
