package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/enteocode/mfa/pkg/logger"
)

type subscription struct {
	id      uint64
	name    string // empty for wildcard
	handler Handler
}

// Local is an in-process, synchronous event bus. It is safe for concurrent
// use.
type Local struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	logger *slog.Logger
}

var _ Emitter = (*Local)(nil)

// Option configures a Local bus.
type Option func(*Local)

// WithLogger sets the logger used to report handler failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Local) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewLocal creates an empty bus.
func NewLocal(opts ...Option) *Local {
	b := &Local{logger: logger.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logger.Component("mfa.eventbus"))
	return b
}

// Subscribe registers handler for events named name and returns a function
// that removes it.
func (b *Local) Subscribe(name string, handler Handler) func() {
	return b.add(name, handler)
}

// SubscribeAll registers handler for every event.
func (b *Local) SubscribeAll(handler Handler) func() {
	return b.add("", handler)
}

func (b *Local) add(name string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Local) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every matching handler in subscription order. Handlers may
// emit further events.
func (b *Local) Emit(ctx context.Context, event Event) {
	name := event.EventName()

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.name == "" || s.name == name {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := b.call(ctx, h, event); err != nil {
			b.logger.ErrorContext(ctx, "event handler failed",
				logger.Event(name),
				logger.Error(err),
			)
		}
	}
}

func (b *Local) call(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h(ctx, event)
}

// Len returns the number of active subscriptions.
func (b *Local) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
