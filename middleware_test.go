package mfa_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/enteocode/mfa"
	"github.com/enteocode/mfa/pkg/credentials"
)

func TestMFA_Middleware(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	secret := f.enable(t, "alice")
	token := f.token(t, secret)

	var seen *mfa.Credentials
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = mfa.CredentialsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := f.m.Middleware()(next)

	tests := []struct {
		name   string
		user   string
		token  string
		status int
	}{
		{name: "valid", user: "alice", token: token, status: http.StatusNoContent},
		{name: "invalid token", user: "alice", token: wrongToken(token), status: http.StatusUnauthorized},
		{name: "not enabled", user: "bob", token: token, status: http.StatusUnauthorized},
		{name: "missing token", user: "alice", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/secure", nil)
			r.Header.Set(credentials.DefaultUserHeader, tt.user)
			if tt.token != "" {
				r.Header.Set(credentials.DefaultTokenHeader, tt.token)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, tt.user, seen.User)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestMFA_MiddlewareErrorHandler(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	var got error
	handler := f.m.Middleware(mfa.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusForbidden)
	}))(http.NotFoundHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.ErrorIs(t, got, mfa.ErrMissingCredentials)
	assert.True(t, mfa.IsUnauthorized(got))
	assert.False(t, mfa.IsUnauthorized(errors.New("boom")))
}

func TestMFA_UnaryServerInterceptor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	secret := f.enable(t, "alice")
	token := f.token(t, secret)
	interceptor := f.m.UnaryServerInterceptor()

	handler := func(ctx context.Context, _ any) (any, error) {
		creds, ok := mfa.CredentialsFromContext(ctx)
		if !ok {
			return nil, errors.New("no credentials")
		}
		return creds.User, nil
	}
	call := func(token string) (any, error) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
			credentials.DefaultUserMetadataKey, "alice",
			credentials.DefaultTokenMetadataKey, token,
		))
		return interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}, handler)
	}

	resp, err := call(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp)

	_, err = call(wrongToken(token))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestMFA_MiddlewareThrottled(t *testing.T) {
	t.Parallel()

	cfg := mfa.DefaultConfig("Acme")
	cfg.MaxAttempts = 1
	f := newFixtureWithConfig(t, cfg)
	secret := f.enable(t, "alice")
	bad := wrongToken(f.token(t, secret))

	handler := f.m.Middleware()(http.NotFoundHandler())
	serve := func() int {
		r := httptest.NewRequest(http.MethodGet, "/secure", nil)
		r.Header.Set(credentials.DefaultUserHeader, "alice")
		r.Header.Set(credentials.DefaultTokenHeader, bad)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve())
	assert.Equal(t, http.StatusTooManyRequests, serve())
	assert.Equal(t, http.StatusTooManyRequests, serve())
}

func TestMFA_UnaryServerInterceptorCodes(t *testing.T) {
	t.Parallel()

	cfg := mfa.DefaultConfig("Acme")
	cfg.MaxAttempts = 1
	f := newFixtureWithConfig(t, cfg)
	secret := f.enable(t, "alice")
	bad := wrongToken(f.token(t, secret))
	interceptor := f.m.UnaryServerInterceptor()

	call := func(interceptor grpc.UnaryServerInterceptor) error {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
			credentials.DefaultUserMetadataKey, "alice",
			credentials.DefaultTokenMetadataKey, bad,
		))
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
			return nil, nil
		})
		return err
	}

	assert.Equal(t, codes.Unauthenticated, status.Code(call(interceptor)))
	assert.Equal(t, codes.ResourceExhausted, status.Code(call(interceptor)))

	broken := newFixture(t, mfa.WithAttemptLimiter(failingLimiter{}))
	broken.enable(t, "alice")
	assert.Equal(t, codes.Unavailable, status.Code(call(broken.m.UnaryServerInterceptor())))
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   codes.Code
		unauth bool
	}{
		{name: "invalid token", err: mfa.ErrTokenInvalid, status: http.StatusUnauthorized, code: codes.Unauthenticated, unauth: true},
		{name: "throttled", err: mfa.ErrTooManyAttempts, status: http.StatusTooManyRequests, code: codes.ResourceExhausted, unauth: true},
		{name: "read failure", err: errors.Join(mfa.ErrStorageReadFailed, errBackend), status: http.StatusServiceUnavailable, code: codes.Unavailable},
		{name: "write failure", err: mfa.ErrStorageWriteFailed, status: http.StatusServiceUnavailable, code: codes.Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, mfa.HTTPStatus(tt.err))
			assert.Equal(t, tt.code, mfa.GRPCCode(tt.err))
			assert.Equal(t, tt.unauth, mfa.IsUnauthorized(tt.err))
		})
	}
}
