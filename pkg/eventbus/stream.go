package eventbus

import (
	"context"
	"sync"
)

// Stream subscribes to every event and delivers them on a channel with the
// given buffer (minimum 1). Events are dropped while the buffer is full. The
// channel is closed once ctx is done.
func (b *Local) Stream(ctx context.Context, buffer int) <-chan Event {
	ch := make(chan Event, max(buffer, 1))

	var (
		mu     sync.Mutex
		closed bool
	)
	unsubscribe := b.SubscribeAll(func(_ context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return nil
		}
		select {
		case ch <- e:
		default:
		}
		return nil
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}
