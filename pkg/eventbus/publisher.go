package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/enteocode/mfa/pkg/logger"
)

// Message is the broker-agnostic form of an event.
type Message struct {
	Topic   string
	Key     []byte
	Body    []byte
	Headers map[string]string
}

// Sink delivers a message to a broker.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Envelope is the JSON body published for every event.
type Envelope struct {
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// HeaderEventName carries the event name on brokers that support headers.
const HeaderEventName = "Mfa-Event"

// Publisher forwards events to a Sink.
type Publisher struct {
	sink   Sink
	prefix string
	clock  func() time.Time
	logger *slog.Logger
}

var _ Emitter = (*Publisher)(nil)

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithTopicPrefix is prepended to the event name to build the topic or
// subject, e.g. "auth." gives "auth.mfa.enabled".
func WithTopicPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithPublisherLogger sets the logger used to report delivery failures.
func WithPublisherLogger(l *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPublisherClock replaces time.Now for the envelope timestamp.
func WithPublisherClock(clock func() time.Time) PublisherOption {
	return func(p *Publisher) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// NewPublisher creates a Publisher on sink.
func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:   sink,
		clock:  time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("mfa.publisher"))
	return p
}

// Emit encodes and sends event; failures are logged.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if err := p.Publish(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			logger.Event(event.EventName()),
			logger.Error(err),
		)
	}
}

// Publish encodes and sends event, returning any error.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	msg, err := p.encode(event)
	if err != nil {
		return err
	}
	if err := p.sink.Send(ctx, msg); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

func (p *Publisher) encode(event Event) (Message, error) {
	name := event.EventName()
	if r, ok := event.(Redactor); ok {
		event = r.Redact()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return Message{}, errors.Join(ErrEncodeFailed, err)
	}
	body, err := json.Marshal(Envelope{
		Name:       name,
		OccurredAt: p.clock().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return Message{}, errors.Join(ErrEncodeFailed, err)
	}

	msg := Message{
		Topic:   p.prefix + name,
		Body:    body,
		Headers: map[string]string{HeaderEventName: name},
	}
	if k, ok := event.(Keyed); ok {
		msg.Key = []byte(k.EventKey())
	}
	return msg, nil
}
