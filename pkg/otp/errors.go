package otp

import "errors"

var (
	ErrInvalidSecretSize      = errors.New("otp: secret size must be positive")
	ErrFailedToGenerateSecret = errors.New("otp: failed to generate secret")
	ErrInvalidSecret          = errors.New("otp: secret is not valid base32")
	ErrMissingIssuer          = errors.New("otp: issuer is required")
	ErrMissingAccountName     = errors.New("otp: account name is required")
	ErrFailedToGenerateToken  = errors.New("otp: failed to generate token")
	ErrFailedToGenerateKeyURI = errors.New("otp: failed to generate key uri")
	ErrUnsupportedDigits      = errors.New("otp: digits must be 6 or 8")
)
