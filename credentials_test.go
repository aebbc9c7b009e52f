package mfa_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enteocode/mfa"
	"github.com/enteocode/mfa/pkg/credentials"
)

func httpContext(user, token string) credentials.Context {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if user != "" {
		r.Header.Set(credentials.DefaultUserHeader, user)
	}
	if token != "" {
		r.Header.Set(credentials.DefaultTokenHeader, token)
	}
	return credentials.NewHTTPContext(r)
}

func TestMFA_Credentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	secret := f.enable(t, "alice")
	token := f.token(t, secret)

	t.Run("extracts without validation", func(t *testing.T) {
		t.Parallel()
		creds, err := f.m.Credentials(ctx, httpContext("alice", "999999"), mfa.ResolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, &mfa.Credentials{User: "alice", Token: "999999"}, creds)
	})

	t.Run("validates", func(t *testing.T) {
		t.Parallel()
		creds, err := f.m.Credentials(ctx, httpContext("alice", token), mfa.ResolveOptions{Validate: true})
		require.NoError(t, err)
		assert.Equal(t, "alice", creds.User)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()
		_, err := f.m.Credentials(ctx, httpContext("alice", wrongToken(token)), mfa.ResolveOptions{Validate: true})
		assert.ErrorIs(t, err, mfa.ErrTokenInvalid)

		_, err = f.m.Credentials(ctx, httpContext("mallory", token), mfa.ResolveOptions{Validate: true})
		assert.ErrorIs(t, err, mfa.ErrNotEnabled)
	})

	t.Run("no extractor", func(t *testing.T) {
		t.Parallel()
		creds, err := f.m.Credentials(ctx, credentials.Static("smtp"), mfa.ResolveOptions{})
		require.NoError(t, err)
		assert.Nil(t, creds)

		// the built-in extractor does not support a request without a token
		creds, err = f.m.Credentials(ctx, httpContext("alice", ""), mfa.ResolveOptions{Validate: true})
		require.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("required extractor", func(t *testing.T) {
		t.Parallel()
		_, err := f.m.Credentials(ctx, credentials.Static("smtp"), mfa.ResolveOptions{Required: true})
		assert.ErrorIs(t, err, mfa.ErrNoExtractor)

		_, err = f.m.Credentials(ctx, nil, mfa.ResolveOptions{Required: true})
		assert.ErrorIs(t, err, mfa.ErrNoExtractor)
	})
}

func TestMFA_CustomExtractors(t *testing.T) {
	t.Parallel()

	custom := &credentials.Func{
		UserFunc:  func(credentials.Context) string { return "custom-user" },
		TokenFunc: func(credentials.Context) string { return "123456" },
	}

	t.Run("registered before built-ins", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mfa.WithExtractor(custom, credentials.TypeHTTP))

		creds, err := f.m.Credentials(context.Background(), httpContext("alice", "1"), mfa.ResolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, "custom-user", creds.User)
	})

	t.Run("wildcard for custom transports", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mfa.WithExtractor(custom))

		creds, err := f.m.Credentials(context.Background(), credentials.Static("ws"), mfa.ResolveOptions{Required: true})
		require.NoError(t, err)
		assert.Equal(t, "123456", creds.Token)
	})

	t.Run("without built-ins", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mfa.WithoutBuiltinExtractors())

		assert.Empty(t, f.m.Registry().Types())
		_, err := f.m.Credentials(context.Background(), httpContext("alice", "1"), mfa.ResolveOptions{Required: true})
		assert.ErrorIs(t, err, mfa.ErrNoExtractor)
	})

	t.Run("registry is frozen", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		assert.True(t, f.m.Registry().Frozen())
		assert.ErrorIs(t, f.m.Registry().Register(custom), credentials.ErrRegistryFrozen)
	})

	t.Run("nil extractor fails New", func(t *testing.T) {
		t.Parallel()
		_, err := mfa.New(mfa.DefaultConfig("Acme"), &flakyStore{}, mfa.WithExtractor(nil))
		assert.ErrorIs(t, err, credentials.ErrNilExtractor)
	})
}

func TestCredentialsFromContext(t *testing.T) {
	t.Parallel()

	_, ok := mfa.CredentialsFromContext(context.Background())
	assert.False(t, ok)

	ctx := mfa.WithCredentials(context.Background(), &mfa.Credentials{User: "alice"})
	creds, ok := mfa.CredentialsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", creds.User)
}
