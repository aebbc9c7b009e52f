package mfa

import (
	"log/slog"

	"github.com/enteocode/mfa/pkg/credentials"
	"github.com/enteocode/mfa/pkg/eventbus"
	"github.com/enteocode/mfa/pkg/serializer"
	"github.com/enteocode/mfa/pkg/throttle"
)

// Option configures New.
type Option func(*options)

type registration struct {
	extractor credentials.Extractor
	types     []string
}

type options struct {
	logger     *slog.Logger
	serializer serializer.Serializer
	engine     OTPEngine
	encoder    ImageEncoder
	bus        *eventbus.Local
	emitters   []eventbus.Emitter
	extractors []registration
	builtins   bool
	limiter    throttle.Limiter
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSerializer replaces the default BSON serializer.
func WithSerializer(s serializer.Serializer) Option {
	return func(o *options) {
		if s != nil {
			o.serializer = s
		}
	}
}

// WithOTPEngine replaces the default TOTP engine.
func WithOTPEngine(e OTPEngine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithImageEncoder replaces the default QR code encoder.
func WithImageEncoder(e ImageEncoder) Option {
	return func(o *options) {
		if e != nil {
			o.encoder = e
		}
	}
}

// WithBus uses bus for local listeners instead of a private one, so callers
// can subscribe their own handlers.
func WithBus(bus *eventbus.Local) Option {
	return func(o *options) {
		if bus != nil {
			o.bus = bus
		}
	}
}

// WithEmitter forwards every event to e after the local listeners ran,
// e.g. an eventbus.Publisher wrapped in eventbus.Async.
func WithEmitter(e eventbus.Emitter) Option {
	return func(o *options) {
		if e != nil {
			o.emitters = append(o.emitters, e)
		}
	}
}

// WithExtractor registers e for the given context types, or for every type
// when none are given. Extractors are consulted in registration order,
// before the built-in ones.
func WithExtractor(e credentials.Extractor, types ...string) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, registration{extractor: e, types: types})
	}
}

// WithoutBuiltinExtractors skips registering the HTTP, gRPC and NATS
// header extractors.
func WithoutBuiltinExtractors() Option {
	return func(o *options) {
		o.builtins = false
	}
}

// WithAttemptLimiter throttles Verify per user with l instead of the
// in-memory limiter built from Config.MaxAttempts.
func WithAttemptLimiter(l throttle.Limiter) Option {
	return func(o *options) {
		if l != nil {
			o.limiter = l
		}
	}
}
