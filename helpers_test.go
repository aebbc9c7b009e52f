package mfa_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/enteocode/mfa"
	"github.com/enteocode/mfa/pkg/eventbus"
	"github.com/enteocode/mfa/pkg/kv/memory"
	"github.com/enteocode/mfa/pkg/otp"
)

var (
	testNow    = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	errBackend = errors.New("backend unavailable")
)

type recorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *recorder) Emit(_ context.Context, event eventbus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) Events() []eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eventbus.Event(nil), r.events...)
}

func (r *recorder) Names() []string {
	var names []string
	for _, e := range r.Events() {
		names = append(names, e.EventName())
	}
	return names
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// flakyStore fails the selected operations on demand.
type flakyStore struct {
	*memory.Store
	failHas atomic.Bool
	failGet atomic.Bool
	failSet atomic.Bool
}

func (f *flakyStore) Has(ctx context.Context, key string) (bool, error) {
	if f.failHas.Load() {
		return false, errBackend
	}
	return f.Store.Has(ctx, key)
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet.Load() {
		return nil, errBackend
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet.Load() {
		return errBackend
	}
	return f.Store.Set(ctx, key, value)
}

type fixture struct {
	m      *mfa.MFA
	kv     *flakyStore
	events *recorder
	engine *otp.Engine
}

func newFixture(t *testing.T, opts ...mfa.Option) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, mfa.DefaultConfig("Acme"), opts...)
}

func newFixtureWithConfig(t *testing.T, cfg mfa.Config, opts ...mfa.Option) *fixture {
	t.Helper()

	f := &fixture{
		kv:     &flakyStore{Store: memory.New()},
		events: &recorder{},
		engine: otp.NewEngine(otp.WithClock(func() time.Time { return testNow })),
	}
	base := []mfa.Option{
		mfa.WithEmitter(f.events),
		mfa.WithOTPEngine(f.engine),
	}
	m, err := mfa.New(cfg, f.kv, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	f.m = m
	return f
}

func (f *fixture) enable(t *testing.T, user string) string {
	t.Helper()
	secret := f.m.Service().Enable(context.Background(), user)
	require.NotEmpty(t, secret)
	return secret
}

func (f *fixture) token(t *testing.T, secret string) string {
	t.Helper()
	token, err := f.engine.GenerateToken(secret, otp.TokenOptions{Epoch: testNow})
	require.NoError(t, err)
	return token
}

// wrongToken returns a well-formed token different from valid.
func wrongToken(valid string) string {
	if valid == "000000" {
		return "111111"
	}
	return "000000"
}
