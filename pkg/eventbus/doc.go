// Package eventbus delivers MFA domain events to in-process listeners and to
// external brokers.
//
// Emission is fire-and-forget: Emitter.Emit has no return value, handler and
// publisher failures are logged and never reach the code that raised the
// event.
//
// # Local bus
//
// Local dispatches synchronously, in subscription order, on the emitting
// goroutine. Listeners therefore observe events in the order they were
// emitted and any state they change is visible once Emit returns.
//
//	bus := eventbus.NewLocal(eventbus.WithLogger(log))
//	unsubscribe := bus.Subscribe("mfa.disabled", func(ctx context.Context, e eventbus.Event) error {
//		// react
//		return nil
//	})
//	defer unsubscribe()
//
// Stream exposes the bus as a buffered channel. Slow readers lose events
// instead of blocking emitters.
//
// # Brokers
//
// Publisher serializes events as JSON envelopes and forwards them to a Sink.
// NATSSink and KafkaSink adapt *nats.Conn and *kafka.Writer. Events that
// implement Redactor are redacted before leaving the process; events that
// implement Keyed provide the partition key.
//
// Async wraps any emitter so that slow brokers do not delay the caller;
// Close waits for in-flight deliveries.
//
// Multi fans one Emit out to several emitters.
package eventbus
