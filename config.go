package mfa

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/enteocode/mfa/pkg/otp"
	"github.com/enteocode/mfa/pkg/store"
)

// Config holds the module settings. Zero values are replaced by defaults in
// New; Issuer is the only mandatory field.
type Config struct {
	Issuer        string        `env:"MFA_ISSUER,required"`                // Application name shown in authenticator apps
	TTL           time.Duration `env:"MFA_TTL" envDefault:"30s"`           // Step of timeout tokens
	CipherKey     string        `env:"MFA_CIPHER_KEY"`                     // Encrypts stored values; empty stores them unencrypted
	SecretSize    int           `env:"MFA_SECRET_SIZE" envDefault:"20"`    // Secret length in bytes
	RecoveryCount int           `env:"MFA_RECOVERY_COUNT" envDefault:"10"` // Recovery codes per set
	RecoverySize  int           `env:"MFA_RECOVERY_SIZE" envDefault:"10"`  // Recovery code length in bytes
	KeyRoot       string        `env:"MFA_KEY_ROOT" envDefault:"mfa"`      // Prefix of storage keys
	QRSize        int           `env:"MFA_QR_SIZE" envDefault:"256"`       // QR code edge in pixels
	MaxAttempts   int           `env:"MFA_MAX_ATTEMPTS" envDefault:"0"`    // Verifications per user and window; 0 disables throttling
	AttemptWindow time.Duration `env:"MFA_ATTEMPT_WINDOW" envDefault:"1m"` // Window after which attempts are given back
}

var (
	cfg     Config
	cfgErr  error
	cfgOnce sync.Once
)

// DefaultConfig returns the defaults for issuer.
func DefaultConfig(issuer string) Config {
	return Config{
		Issuer:        issuer,
		TTL:           otp.DefaultStep,
		SecretSize:    otp.DefaultSecretSize,
		RecoveryCount: DefaultRecoveryCount,
		RecoverySize:  DefaultRecoverySize,
		KeyRoot:       store.DefaultRoot,
		QRSize:        256,
		AttemptWindow: time.Minute,
	}
}

// LoadConfig reads the configuration from the environment once, loading a
// .env file first when present. Later calls return the cached result.
func LoadConfig() (Config, error) {
	cfgOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
		cfg, cfgErr = ParseConfig()
	})
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	return cfg, nil
}

// ParseConfig reads and validates the configuration from the environment
// without caching.
func ParseConfig() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Issuer == "":
		return errors.Join(ErrInvalidConfig, ErrMissingIssuer)
	case c.TTL < 0:
		return errors.Join(ErrInvalidConfig, ErrInvalidTTL)
	case c.SecretSize != 0 && c.SecretSize < otp.MinSecretSize:
		return errors.Join(ErrInvalidConfig, ErrSecretSizeTooSmall)
	case c.RecoverySize != 0 && c.RecoverySize < otp.MinSecretSize:
		return errors.Join(ErrInvalidConfig, ErrRecoverySizeTooSmall)
	case c.RecoveryCount < 0 || c.QRSize < 0 || c.MaxAttempts < 0 || c.AttemptWindow < 0:
		return errors.Join(ErrInvalidConfig, ErrNegativeSetting)
	}
	return nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig(c.Issuer)
	if c.TTL == 0 {
		c.TTL = d.TTL
	}
	if c.SecretSize == 0 {
		c.SecretSize = d.SecretSize
	}
	if c.RecoveryCount == 0 {
		c.RecoveryCount = d.RecoveryCount
	}
	if c.RecoverySize == 0 {
		c.RecoverySize = d.RecoverySize
	}
	if c.KeyRoot == "" {
		c.KeyRoot = d.KeyRoot
	}
	if c.QRSize == 0 {
		c.QRSize = d.QRSize
	}
	if c.AttemptWindow == 0 {
		c.AttemptWindow = d.AttemptWindow
	}
	return c
}
