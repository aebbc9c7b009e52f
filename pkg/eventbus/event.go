package eventbus

import "context"

// Event is a named domain event.
type Event interface {
	EventName() string
}

// Keyed events provide a partition/ordering key to brokers.
type Keyed interface {
	EventKey() string
}

// Redactor events return a copy without sensitive fields for delivery
// outside the process.
type Redactor interface {
	Redact() Event
}

// Emitter accepts events for delivery.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, event Event)

func (f EmitterFunc) Emit(ctx context.Context, event Event) {
	f(ctx, event)
}

// Handler reacts to an event. Returned errors are logged by the bus.
type Handler func(ctx context.Context, event Event) error

// Nop discards every event.
var Nop Emitter = EmitterFunc(func(context.Context, Event) {})

// Multi returns an emitter that forwards to each non-nil emitter in order.
func Multi(emitters ...Emitter) Emitter {
	targets := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			targets = append(targets, e)
		}
	}
	return EmitterFunc(func(ctx context.Context, event Event) {
		for _, e := range targets {
			e.Emit(ctx, event)
		}
	})
}
