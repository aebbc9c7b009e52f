package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enteocode/mfa/pkg/eventbus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "mfa"

var ErrRegisterFailed = errors.New("metrics: failed to register collector")

// Collector counts events by name.
type Collector struct {
	events *prometheus.CounterVec
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace   string
	constLabels prometheus.Labels
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithConstLabels attaches fixed labels, e.g. the service name.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) {
		o.constLabels = labels
	}
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer, opts ...Option) (*Collector, error) {
	o := options{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "events_total",
			Help:        "Number of MFA events emitted, by event name.",
			ConstLabels: o.constLabels,
		}, []string{"event"}),
	}

	if reg != nil {
		if err := reg.Register(c.events); err != nil {
			return nil, errors.Join(ErrRegisterFailed, err)
		}
	}
	return c, nil
}

// Observe counts event.
func (c *Collector) Observe(event eventbus.Event) {
	c.events.WithLabelValues(event.EventName()).Inc()
}

// Emit lets the Collector be used directly as an eventbus.Emitter.
func (c *Collector) Emit(_ context.Context, event eventbus.Event) {
	c.Observe(event)
}

// Attach subscribes the Collector to every event on bus and returns the
// unsubscribe function.
func (c *Collector) Attach(bus *eventbus.Local) func() {
	return bus.SubscribeAll(func(_ context.Context, event eventbus.Event) error {
		c.Observe(event)
		return nil
	})
}

// Count returns the current counter value for name.
func (c *Collector) Count(name string) float64 {
	m, err := c.events.GetMetricWithLabelValues(name)
	if err != nil {
		return 0
	}
	return counterValue(m)
}

// Handler serves the metrics gathered by g in the Prometheus exposition
// format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
