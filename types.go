package mfa

import (
	"context"

	"github.com/enteocode/mfa/pkg/otp"
	"github.com/enteocode/mfa/pkg/qrcode"
)

// Identifier is the opaque user key. Numeric ids are passed as their
// decimal string.
type Identifier = string

// TokenType selects what Generate produces.
type TokenType string

const (
	// TokenTypeTimeout is a one-time token valid for the configured TTL,
	// suitable for delivery by email or SMS.
	TokenTypeTimeout TokenType = "timeout"
	// TokenTypeAuthenticator enrolls an authenticator app through a key URI
	// or its QR code.
	TokenTypeAuthenticator TokenType = "authenticator"
)

// Valid reports whether t is a known token type.
func (t TokenType) Valid() bool {
	return t == TokenTypeTimeout || t == TokenTypeAuthenticator
}

func (t TokenType) String() string {
	return string(t)
}

// OTPEngine generates and verifies one-time passwords. *otp.Engine is the
// default implementation.
type OTPEngine interface {
	GenerateSecret(byteLength int) (string, error)
	GenerateToken(secret string, opts otp.TokenOptions) (string, error)
	GenerateKeyURI(secret, issuer, accountName string) (string, error)
	Verify(secret, token string) bool
}

// ImageEncoder renders key URIs as QR code images. *qrcode.Encoder is the
// default implementation.
type ImageEncoder interface {
	Supports(format qrcode.Format) bool
	Encode(ctx context.Context, content string, format qrcode.Format) (*qrcode.Image, error)
}

var (
	_ OTPEngine    = (*otp.Engine)(nil)
	_ ImageEncoder = (*qrcode.Encoder)(nil)
)
