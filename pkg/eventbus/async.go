package eventbus

import (
	"context"
	"sync"
)

// AsyncEmitter delivers events to the wrapped emitter on background
// goroutines.
type AsyncEmitter struct {
	next   Emitter
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// Async wraps next. The emitting context's values are kept but its
// cancellation is not propagated to the delivery.
func Async(next Emitter) *AsyncEmitter {
	return &AsyncEmitter{next: next}
}

func (a *AsyncEmitter) Emit(ctx context.Context, event Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.next.Emit(context.WithoutCancel(ctx), event)
	}()
}

// Close stops accepting events and waits for pending deliveries.
func (a *AsyncEmitter) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.wg.Wait()
	return nil
}
