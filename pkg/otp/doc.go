// Package otp implements the one-time-password engine used by the MFA
// service: secret generation, TOTP token generation and verification, and
// otpauth:// key URIs for authenticator apps.
//
// The heavy lifting is done by github.com/pquerna/otp; this package fixes the
// parameters the rest of the module relies on.
//
// # Defaults
//
//   - HMAC-SHA1, 6 digits, 30-second step (RFC 6238)
//   - secrets are Base32 without padding, 20 random bytes by default;
//     MinSecretSize is the floor callers should enforce for TOTP secrets
//   - verification accepts the current step and one step either side
//
// # Usage
//
//	engine := otp.NewEngine()
//
//	secret, err := engine.GenerateSecret(otp.DefaultSecretSize)
//	uri, err := engine.GenerateKeyURI(secret, "Acme", "alice@example.com")
//
//	token, err := engine.GenerateToken(secret, otp.TokenOptions{})
//	ok := engine.Verify(secret, token)
//
// # Token format
//
// IsToken checks that a string has the shape of a token (exactly n decimal
// digits) without touching any secret. Use it to reject malformed input
// before reaching storage.
package otp
