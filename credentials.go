package mfa

import (
	"context"

	"github.com/enteocode/mfa/pkg/credentials"
	"github.com/enteocode/mfa/pkg/logger"
)

// Credentials identify who presents which token.
type Credentials struct {
	User  Identifier
	Token string
}

// ResolveOptions tune Credentials. Both default to false.
type ResolveOptions struct {
	// Required turns a missing extractor into ErrNoExtractor instead of a
	// nil result.
	Required bool
	// Validate verifies the extracted token.
	Validate bool
}

// Credentials extracts the credentials carried by c. Without a supporting
// extractor it returns nil, nil unless opts.Required is set.
func (m *MFA) Credentials(ctx context.Context, c credentials.Context, opts ResolveOptions) (*Credentials, error) {
	e := m.registry.Resolve(c)
	if e == nil {
		if opts.Required {
			typ := ""
			if c != nil {
				typ = c.Type()
			}
			m.logger.ErrorContext(ctx, "no credentials extractor for context", logger.ContextType(typ))
			return nil, ErrNoExtractor
		}
		return nil, nil
	}

	creds := &Credentials{
		User:  e.UserIdentifier(c),
		Token: e.Token(c),
	}
	if opts.Validate {
		if err := m.service.Verify(ctx, creds.User, creds.Token); err != nil {
			return nil, err
		}
	}
	return creds, nil
}

type credentialsKey struct{}

// WithCredentials returns a copy of ctx carrying creds.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFromContext returns the credentials stored by WithCredentials,
// typically by Middleware.
func CredentialsFromContext(ctx context.Context) (*Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(*Credentials)
	return creds, ok && creds != nil
}
