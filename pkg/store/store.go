package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/enteocode/mfa/pkg/cipher"
	"github.com/enteocode/mfa/pkg/kv"
	"github.com/enteocode/mfa/pkg/logger"
	"github.com/enteocode/mfa/pkg/serializer"
)

// Store is the namespaced, encrypted persistence layer for MFA state.
type Store struct {
	kv         kv.Store
	cipher     cipher.Cipher
	serializer serializer.Serializer
	logger     *slog.Logger
	root       string
}

// Option configures a Store.
type Option func(*Store)

// WithCipher sets the cipher applied to every payload. Defaults to the
// pass-through cipher.
func WithCipher(c cipher.Cipher) Option {
	return func(s *Store) {
		if c != nil {
			s.cipher = c
		}
	}
}

// WithSerializer overrides the default BSON serializer.
func WithSerializer(sr serializer.Serializer) Option {
	return func(s *Store) {
		if sr != nil {
			s.serializer = sr
		}
	}
}

// WithLogger sets the logger used to report absorbed failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoot overrides the key root.
func WithRoot(root string) Option {
	return func(s *Store) {
		if root != "" {
			s.root = root
		}
	}
}

// New creates a Store on top of backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:         backend,
		cipher:     cipher.New(nil),
		serializer: serializer.NewBSON(),
		logger:     logger.Discard(),
		root:       DefaultRoot,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("mfa.store"))
	return s
}

func (s *Store) key(user string, ns Namespace) string {
	return Key(s.root, user, ns)
}

// Has reports whether a value exists for user in ns.
func (s *Store) Has(ctx context.Context, user string, ns Namespace) (bool, error) {
	ok, err := s.kv.Has(ctx, s.key(user, ns))
	if err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	return ok, nil
}

// Set serializes, encrypts and stores value. It reports success.
func (s *Store) Set(ctx context.Context, user string, ns Namespace, value any) bool {
	if err := s.set(ctx, user, ns, value); err != nil {
		s.logger.ErrorContext(ctx, "failed to store value",
			logger.UserID(user),
			logger.Namespace(string(ns)),
			logger.Error(err),
		)
		return false
	}
	return true
}

func (s *Store) set(ctx context.Context, user string, ns Namespace, value any) error {
	data, err := s.serializer.Marshal(value)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	envelope, err := s.cipher.Encrypt(data)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := s.kv.Set(ctx, s.key(user, ns), envelope); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Get loads the value for user in ns into dst. It returns false when the
// value is missing or cannot be read back.
func (s *Store) Get(ctx context.Context, user string, ns Namespace, dst any) bool {
	found, err := s.get(ctx, user, ns, dst)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load value",
			logger.UserID(user),
			logger.Namespace(string(ns)),
			logger.Error(err),
		)
		return false
	}
	return found
}

func (s *Store) get(ctx context.Context, user string, ns Namespace, dst any) (bool, error) {
	envelope, err := s.kv.Get(ctx, s.key(user, ns))
	if err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	if envelope == nil {
		return false, nil
	}
	data, err := s.cipher.Decrypt(envelope)
	if err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	if err := s.serializer.Unmarshal(data, dst); err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	return true, nil
}

// Delete removes the value for user in ns. It returns true only when a
// value existed and was removed.
func (s *Store) Delete(ctx context.Context, user string, ns Namespace) bool {
	existed, err := s.kv.Delete(ctx, s.key(user, ns))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete value",
			logger.UserID(user),
			logger.Namespace(string(ns)),
			logger.Error(errors.Join(ErrDeleteFailed, err)),
		)
		return false
	}
	return existed
}

// Secret returns the stored secret, or "" when there is none.
func (s *Store) Secret(ctx context.Context, user string) string {
	var secret string
	if !s.Get(ctx, user, NamespaceSecret, &secret) {
		return ""
	}
	return secret
}

// SetSecret stores secret for user.
func (s *Store) SetSecret(ctx context.Context, user, secret string) bool {
	return s.Set(ctx, user, NamespaceSecret, secret)
}

// RecoveryCodes returns the stored set, or nil when there is none. An
// exhausted set is returned empty, not nil.
func (s *Store) RecoveryCodes(ctx context.Context, user string) RecoveryCodes {
	var codes []string
	if !s.Get(ctx, user, NamespaceRecoveryCodes, &codes) {
		return nil
	}
	return NewRecoveryCodes(codes...)
}

// SetRecoveryCodes stores codes for user.
func (s *Store) SetRecoveryCodes(ctx context.Context, user string, codes RecoveryCodes) bool {
	return s.Set(ctx, user, NamespaceRecoveryCodes, codes.Slice())
}
