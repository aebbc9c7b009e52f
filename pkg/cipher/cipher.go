package cipher

import (
	"io"
	"log/slog"
)

// Cipher encrypts and decrypts opaque payloads.
type Cipher interface {
	// Encrypt seals data into an envelope.
	Encrypt(data []byte) ([]byte, error)
	// Decrypt opens an envelope produced by Encrypt. Any failure is reported
	// as ErrDecryptionFailed.
	Decrypt(envelope []byte) ([]byte, error)
	// Enabled reports whether payloads are actually encrypted.
	Enabled() bool
}

// Option configures a cipher.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to trace decryption failures at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New returns the AEAD cipher keyed by secret, or the pass-through cipher
// when secret is empty.
func New(secret []byte, opts ...Option) Cipher {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	if len(secret) == 0 {
		return passthrough{}
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &aead{
		secret: key,
		logger: o.logger,
	}
}

// passthrough is used when no secret is configured.
type passthrough struct{}

func (passthrough) Encrypt(data []byte) ([]byte, error) {
	return data, nil
}

func (passthrough) Decrypt(envelope []byte) ([]byte, error) {
	return envelope, nil
}

func (passthrough) Enabled() bool {
	return false
}
