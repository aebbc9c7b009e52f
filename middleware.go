package mfa

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/enteocode/mfa/pkg/credentials"
)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

type middlewareOptions struct {
	errorHandler ErrorHandler
}

// WithErrorHandler replaces the default plain-text response, whose status
// comes from HTTPStatus.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	code := HTTPStatus(err)
	http.Error(w, http.StatusText(code), code)
}

// HTTPStatus maps a rejection to a response status: 429 for throttled
// attempts, 503 for storage failures and 401 otherwise.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case isStorageFailure(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

// GRPCCode is the gRPC counterpart of HTTPStatus.
func GRPCCode(err error) codes.Code {
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		return codes.ResourceExhausted
	case isStorageFailure(err):
		return codes.Unavailable
	default:
		return codes.Unauthenticated
	}
}

func isStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageReadFailed) || errors.Is(err, ErrStorageWriteFailed)
}

// Middleware rejects requests without a valid token for the requesting
// user. Accepted requests carry their Credentials in the request context.
func (m *MFA) Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			creds, err := m.verified(ctx, credentials.NewHTTPContext(r))
			if err != nil {
				o.errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCredentials(ctx, creds)))
		})
	}
}

// UnaryServerInterceptor is the gRPC counterpart of Middleware. Rejected
// calls fail with the code from GRPCCode.
func (m *MFA) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		creds, err := m.verified(ctx, credentials.NewGRPCContext(ctx))
		if err != nil {
			return nil, status.Error(GRPCCode(err), err.Error())
		}
		return handler(WithCredentials(ctx, creds), req)
	}
}

func (m *MFA) verified(ctx context.Context, c credentials.Context) (*Credentials, error) {
	creds, err := m.Credentials(ctx, c, ResolveOptions{Validate: true})
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, ErrMissingCredentials
	}
	return creds, nil
}

// IsUnauthorized reports whether err is a rejection produced by
// verification or credentials resolution.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotEnabled) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTooManyAttempts) ||
		errors.Is(err, ErrMissingCredentials)
}
