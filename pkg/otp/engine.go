package otp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultDigits     = 6
	DefaultStep       = 30 * time.Second
	DefaultSkew       = 1
	DefaultSecretSize = 20 // 160 bits, RFC 4226 recommendation
	MinSecretSize     = 10
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// TokenOptions tune a single GenerateToken call. Zero fields fall back to
// the engine settings; a zero Epoch means now.
type TokenOptions struct {
	Step   time.Duration
	Digits int
	Epoch  time.Time
}

// Engine generates and verifies TOTP tokens.
type Engine struct {
	step   time.Duration
	skew   uint
	digits otp.Digits
	clock  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithStep sets the default time step. Values under a second are ignored.
func WithStep(step time.Duration) Option {
	return func(e *Engine) {
		if step >= time.Second {
			e.step = step
		}
	}
}

// WithSkew sets how many steps around the current one Verify accepts.
func WithSkew(skew uint) Option {
	return func(e *Engine) {
		e.skew = skew
	}
}

// WithDigits sets the token length; only 6 and 8 are accepted.
func WithDigits(digits int) Option {
	return func(e *Engine) {
		if d, err := toDigits(digits); err == nil {
			e.digits = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// NewEngine returns an engine with RFC 6238 defaults.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		step:   DefaultStep,
		skew:   DefaultSkew,
		digits: otp.DigitsSix,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Digits returns the configured token length.
func (e *Engine) Digits() int {
	return int(e.digits)
}

// GenerateSecret returns byteLength random bytes encoded as unpadded Base32.
// It is also used for recovery codes, so only non-positive lengths are
// rejected; MinSecretSize is enforced by configuration.
func (e *Engine) GenerateSecret(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", ErrInvalidSecretSize
	}
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return b32.EncodeToString(raw), nil
}

// GenerateToken returns the token for secret at opts.Epoch.
func (e *Engine) GenerateToken(secret string, opts TokenOptions) (string, error) {
	step := e.step
	if opts.Step >= time.Second {
		step = opts.Step
	}
	digits := e.digits
	if opts.Digits != 0 {
		d, err := toDigits(opts.Digits)
		if err != nil {
			return "", err
		}
		digits = d
	}
	at := opts.Epoch
	if at.IsZero() {
		at = e.clock()
	}

	token, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    uint(step / time.Second),
		Digits:    digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateToken, err)
	}
	return token, nil
}

// GenerateKeyURI returns the otpauth:// URI that enrolls secret in an
// authenticator app.
func (e *Engine) GenerateKeyURI(secret, issuer, accountName string) (string, error) {
	if issuer == "" {
		return "", ErrMissingIssuer
	}
	if accountName == "" {
		return "", ErrMissingAccountName
	}
	raw, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      uint(e.step / time.Second),
		Secret:      raw,
		Digits:      e.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateKeyURI, err)
	}
	return key.URL(), nil
}

// Verify reports whether token is valid for secret now, allowing the
// configured skew.
func (e *Engine) Verify(secret, token string) bool {
	if !IsToken(token, int(e.digits)) {
		return false
	}
	ok, err := totp.ValidateCustom(token, secret, e.clock(), totp.ValidateOpts{
		Period:    uint(e.step / time.Second),
		Skew:      e.skew,
		Digits:    e.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok && err == nil
}

func decodeSecret(secret string) ([]byte, error) {
	raw, err := b32.DecodeString(strings.ToUpper(strings.TrimRight(secret, "=")))
	if err != nil || len(raw) == 0 {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return raw, nil
}

func toDigits(n int) (otp.Digits, error) {
	switch n {
	case 6:
		return otp.DigitsSix, nil
	case 8:
		return otp.DigitsEight, nil
	}
	return 0, ErrUnsupportedDigits
}
