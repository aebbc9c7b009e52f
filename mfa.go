package mfa

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/enteocode/mfa/pkg/cipher"
	"github.com/enteocode/mfa/pkg/credentials"
	"github.com/enteocode/mfa/pkg/eventbus"
	"github.com/enteocode/mfa/pkg/kv"
	"github.com/enteocode/mfa/pkg/logger"
	"github.com/enteocode/mfa/pkg/otp"
	"github.com/enteocode/mfa/pkg/qrcode"
	"github.com/enteocode/mfa/pkg/serializer"
	"github.com/enteocode/mfa/pkg/store"
	"github.com/enteocode/mfa/pkg/throttle"
)

// MFA wires the secret store, the service, the recovery manager and the
// credentials registry together.
type MFA struct {
	config   Config
	store    *store.Store
	service  *Service
	recovery *Recovery
	registry *credentials.Registry
	bus      *eventbus.Local
	logger   *slog.Logger

	closers   []func() error
	closeOnce sync.Once
}

// New builds the module on top of backend. The credentials registry is
// frozen before New returns.
func New(cfg Config, backend kv.Store, opts ...Option) (*MFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, errors.Join(ErrInvalidConfig, ErrMissingStore)
	}
	cfg = cfg.withDefaults()

	o := options{
		logger:     logger.Discard(),
		serializer: serializer.NewBSON(),
		builtins:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = otp.NewEngine()
	}
	if o.encoder == nil {
		o.encoder = qrcode.NewEncoder(qrcode.WithSize(cfg.QRSize))
	}
	if o.bus == nil {
		o.bus = eventbus.NewLocal(eventbus.WithLogger(o.logger))
	}

	var closers []func() error
	if o.limiter == nil && cfg.MaxAttempts > 0 {
		attempts := throttle.NewMemoryStore(throttle.WithCleanupInterval(cfg.AttemptWindow))
		limiter, err := throttle.NewBucket(attempts, throttle.Config{
			Capacity:       cfg.MaxAttempts,
			RefillRate:     cfg.MaxAttempts,
			RefillInterval: cfg.AttemptWindow,
		})
		if err != nil {
			_ = attempts.Close()
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		o.limiter = limiter
		closers = append(closers, attempts.Close)
	}

	st := store.New(backend,
		store.WithCipher(cipher.New([]byte(cfg.CipherKey), cipher.WithLogger(o.logger))),
		store.WithSerializer(o.serializer),
		store.WithLogger(o.logger),
		store.WithRoot(cfg.KeyRoot),
	)

	emitter := eventbus.Multi(append([]eventbus.Emitter{o.bus}, o.emitters...)...)

	m := &MFA{
		config: cfg,
		store:  st,
		service: &Service{
			store:      st,
			engine:     o.engine,
			encoder:    o.encoder,
			emitter:    emitter,
			limiter:    o.limiter,
			logger:     o.logger.With(logger.Component("mfa.service")),
			issuer:     cfg.Issuer,
			ttl:        cfg.TTL,
			secretSize: cfg.SecretSize,
		},
		recovery: &Recovery{
			store:   st,
			engine:  o.engine,
			emitter: emitter,
			logger:  o.logger.With(logger.Component("mfa.recovery")),
			count:   cfg.RecoveryCount,
			size:    cfg.RecoverySize,
		},
		registry: credentials.NewRegistry(),
		bus:      o.bus,
		logger:   o.logger.With(logger.Component("mfa")),
		closers:  closers,
	}

	if err := m.register(o); err != nil {
		_ = m.Close()
		return nil, err
	}
	m.registry.Freeze()

	unsubscribe := o.bus.Subscribe(EventDisabled, disableRecoveryOnDisabled(m.recovery))
	m.closers = append(m.closers, func() error {
		unsubscribe()
		return nil
	})
	return m, nil
}

func (m *MFA) register(o options) error {
	for _, r := range o.extractors {
		if err := m.registry.Register(r.extractor, r.types...); err != nil {
			return err
		}
	}
	if o.builtins {
		builtins := []registration{
			{extractor: credentials.NewHTTPExtractor(), types: []string{credentials.TypeHTTP}},
			{extractor: credentials.NewMetadataExtractor(), types: []string{credentials.TypeRPC}},
			{extractor: credentials.NewNATSHeaderExtractor(), types: []string{credentials.TypeNATS}},
		}
		for _, r := range builtins {
			if err := m.registry.Register(r.extractor, r.types...); err != nil {
				return err
			}
		}
	}
	return nil
}

// Config returns the effective configuration.
func (m *MFA) Config() Config { return m.config }

// Service returns the secret lifecycle service.
func (m *MFA) Service() *Service { return m.service }

// Recovery returns the recovery code manager.
func (m *MFA) Recovery() *Recovery { return m.recovery }

// Registry returns the frozen credentials registry.
func (m *MFA) Registry() *credentials.Registry { return m.registry }

// Bus returns the local event bus.
func (m *MFA) Bus() *eventbus.Local { return m.bus }

// Store returns the secret store.
func (m *MFA) Store() *store.Store { return m.store }

// Close detaches the module listeners from the bus and stops the attempt
// limiter. The key-value backend is owned by the caller and stays open.
func (m *MFA) Close() error {
	var errs []error
	m.closeOnce.Do(func() {
		for _, c := range m.closers {
			errs = append(errs, c())
		}
	})
	err := errors.Join(errs...)
	if err != nil {
		m.logger.Error("cannot close mfa resources", logger.Errors(errs...))
	}
	return err
}
