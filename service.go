package mfa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/enteocode/mfa/pkg/eventbus"
	"github.com/enteocode/mfa/pkg/logger"
	"github.com/enteocode/mfa/pkg/otp"
	"github.com/enteocode/mfa/pkg/qrcode"
	"github.com/enteocode/mfa/pkg/store"
	"github.com/enteocode/mfa/pkg/throttle"
)

// Service manages the MFA secret of each user.
type Service struct {
	store      *store.Store
	engine     OTPEngine
	encoder    ImageEncoder
	emitter    eventbus.Emitter
	limiter    throttle.Limiter
	logger     *slog.Logger
	issuer     string
	ttl        time.Duration
	secretSize int
}

// Generated is the result of Generate. Exactly one field is set.
type Generated struct {
	Token string
	URI   string
	Image *qrcode.Image
}

// GenerateOption tunes Generate.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	token  otp.TokenOptions
	format qrcode.Format
}

// WithTokenOptions overrides the step, digits or epoch of a timeout token.
// Zero fields keep the configured values.
func WithTokenOptions(opts otp.TokenOptions) GenerateOption {
	return func(g *generateOptions) {
		g.token = opts
	}
}

// WithImageFormat renders the authenticator key URI as a QR code image.
func WithImageFormat(format qrcode.Format) GenerateOption {
	return func(g *generateOptions) {
		g.format = format
	}
}

// IsEnabled reports whether user has a secret.
func (s *Service) IsEnabled(ctx context.Context, user Identifier) (bool, error) {
	ok, err := s.store.Has(ctx, user, store.NamespaceSecret)
	if err != nil {
		return false, errors.Join(ErrStorageReadFailed, err)
	}
	return ok, nil
}

// Enable creates and stores a new secret for user, replacing any previous
// one, and returns it. It returns "" when the secret could not be created
// or stored.
func (s *Service) Enable(ctx context.Context, user Identifier) string {
	secret, err := s.engine.GenerateSecret(s.secretSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot generate mfa secret",
			logger.UserID(user),
			logger.Error(err),
		)
		return ""
	}
	if !s.store.SetSecret(ctx, user, secret) {
		s.logger.ErrorContext(ctx, "cannot enable mfa for user",
			logger.UserID(user),
			logger.Error(ErrStorageWriteFailed),
		)
		return ""
	}

	s.logger.InfoContext(ctx, "mfa enabled for user", logger.UserID(user))
	s.emitter.Emit(ctx, AuthenticationEnabled{User: user, Secret: secret})
	return secret
}

// Disable deletes the secret of user. It returns true only when a secret
// existed and was removed.
func (s *Service) Disable(ctx context.Context, user Identifier) bool {
	if !s.store.Delete(ctx, user, store.NamespaceSecret) {
		return false
	}

	s.logger.InfoContext(ctx, "mfa disabled for user", logger.UserID(user))
	s.emitter.Emit(ctx, AuthenticationDisabled{User: user})
	return true
}

// Verify checks token against the secret of user. It returns ErrNotEnabled
// when user has no readable secret, ErrTooManyAttempts when the attempt
// limit is exhausted and ErrTokenInvalid on mismatch; all three emit
// AuthenticationFailed.
func (s *Service) Verify(ctx context.Context, user Identifier, token string) error {
	secret := s.store.Secret(ctx, user)
	if secret == "" {
		s.emitter.Emit(ctx, AuthenticationFailed{User: user})
		return ErrNotEnabled
	}

	if err := s.allow(ctx, user); err != nil {
		if errors.Is(err, ErrTooManyAttempts) {
			s.emitter.Emit(ctx, AuthenticationFailed{User: user, Token: token})
		}
		return err
	}

	if !s.engine.Verify(secret, token) {
		s.logger.DebugContext(ctx, "mfa token rejected", logger.UserID(user))
		s.emitter.Emit(ctx, AuthenticationFailed{User: user, Token: token})
		return ErrTokenInvalid
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, attemptKey(user)); err != nil {
			s.logger.WarnContext(ctx, "cannot reset verification attempts",
				logger.UserID(user),
				logger.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) allow(ctx context.Context, user Identifier) error {
	if s.limiter == nil {
		return nil
	}
	res, err := s.limiter.Allow(ctx, attemptKey(user))
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot check verification attempts",
			logger.UserID(user),
			logger.Error(err),
		)
		return errors.Join(ErrStorageReadFailed, err)
	}
	if !res.Allowed() {
		s.logger.WarnContext(ctx, "too many mfa verification attempts",
			logger.UserID(user),
			slog.Duration("retry_after", res.RetryAfter()),
		)
		return ErrTooManyAttempts
	}
	return nil
}

func attemptKey(user Identifier) string {
	return "verify:" + user
}

// Generate produces a timeout token, an authenticator key URI or, with
// WithImageFormat, the key URI as a QR code image.
func (s *Service) Generate(ctx context.Context, user Identifier, typ TokenType, opts ...GenerateOption) (*Generated, error) {
	if !typ.Valid() {
		return nil, ErrInvalidTokenType
	}
	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}

	secret := s.store.Secret(ctx, user)
	if secret == "" {
		return nil, ErrNotEnabled
	}

	if typ == TokenTypeTimeout {
		token, err := s.engine.GenerateToken(secret, s.tokenOptions(o.token))
		if err != nil {
			return nil, s.generateFailed(ctx, user, typ, err)
		}
		return &Generated{Token: token}, nil
	}

	uri, err := s.engine.GenerateKeyURI(secret, s.issuer, user)
	if err != nil {
		return nil, s.generateFailed(ctx, user, typ, err)
	}
	if o.format == "" {
		return &Generated{URI: uri}, nil
	}

	if !s.encoder.Supports(o.format) {
		s.logger.WarnContext(ctx, "unsupported qr code format",
			logger.UserID(user),
			logger.TokenType(typ.String()),
			logger.ImageFormat(string(o.format)),
		)
		return nil, ErrUnsupportedFormat
	}
	img, err := s.encoder.Encode(ctx, uri, o.format)
	if err != nil {
		return nil, s.generateFailed(ctx, user, typ, err)
	}
	return &Generated{Image: img}, nil
}

func (s *Service) generateFailed(ctx context.Context, user Identifier, typ TokenType, err error) error {
	s.logger.ErrorContext(ctx, "cannot generate mfa token",
		logger.UserID(user),
		logger.TokenType(typ.String()),
		logger.Error(err),
	)
	return errors.Join(ErrGenerateFailed, err)
}

func (s *Service) tokenOptions(override otp.TokenOptions) otp.TokenOptions {
	merged := otp.TokenOptions{Step: s.ttl}
	if override.Step != 0 {
		merged.Step = override.Step
	}
	if override.Digits != 0 {
		merged.Digits = override.Digits
	}
	if !override.Epoch.IsZero() {
		merged.Epoch = override.Epoch
	}
	return merged
}

// GenerateToken returns a timeout token for user.
func (s *Service) GenerateToken(ctx context.Context, user Identifier, opts otp.TokenOptions) (string, error) {
	g, err := s.Generate(ctx, user, TokenTypeTimeout, WithTokenOptions(opts))
	if err != nil {
		return "", err
	}
	return g.Token, nil
}

// GenerateKeyURI returns the otpauth:// URI enrolling user in an
// authenticator app.
func (s *Service) GenerateKeyURI(ctx context.Context, user Identifier) (string, error) {
	g, err := s.Generate(ctx, user, TokenTypeAuthenticator)
	if err != nil {
		return "", err
	}
	return g.URI, nil
}

// GenerateQRCode returns the key URI of user rendered as a QR code.
func (s *Service) GenerateQRCode(ctx context.Context, user Identifier, format qrcode.Format) (*qrcode.Image, error) {
	if format == "" {
		return nil, ErrUnsupportedFormat
	}
	g, err := s.Generate(ctx, user, TokenTypeAuthenticator, WithImageFormat(format))
	if err != nil {
		return nil, err
	}
	return g.Image, nil
}
