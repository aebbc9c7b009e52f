package mfa

import "errors"

var (
	ErrNotEnabled        = errors.New("mfa: not enabled for user")
	ErrTokenInvalid      = errors.New("mfa: token is invalid")
	ErrUnsupportedFormat = errors.New("mfa: unsupported image format")
	ErrInvalidTokenType  = errors.New("mfa: unknown token type")
	ErrGenerateFailed    = errors.New("mfa: failed to generate")
	ErrTooManyAttempts   = errors.New("mfa: too many verification attempts")
)

var (
	ErrNoExtractor        = errors.New("mfa: no credentials extractor for context")
	ErrMissingCredentials = errors.New("mfa: missing credentials")
)

var (
	ErrStorageReadFailed  = errors.New("mfa: storage read failed")
	ErrStorageWriteFailed = errors.New("mfa: storage write failed")
)

var (
	ErrInvalidConfig        = errors.New("mfa: invalid configuration")
	ErrMissingIssuer        = errors.New("issuer is required")
	ErrInvalidTTL           = errors.New("ttl must not be negative")
	ErrSecretSizeTooSmall   = errors.New("secret size is below the minimum")
	ErrRecoverySizeTooSmall = errors.New("recovery code size is below the minimum")
	ErrNegativeSetting      = errors.New("counts and sizes must not be negative")
	ErrMissingStore         = errors.New("key-value store is required")
)
