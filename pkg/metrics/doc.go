// Package metrics exports MFA events as Prometheus counters.
//
// A Collector subscribes to an eventbus.Local and counts every event by
// name, so enablement, verification failures and recovery-code usage show
// up as mfa_events_total{event="mfa.failed"} and so on:
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.New(reg)
//	if err != nil {
//		return err
//	}
//	unsubscribe := c.Attach(bus)
//	defer unsubscribe()
//
//	http.Handle("/metrics", metrics.Handler(reg))
package metrics
