package mfa

import (
	"context"
	"log/slog"

	"github.com/enteocode/mfa/pkg/eventbus"
	"github.com/enteocode/mfa/pkg/logger"
	"github.com/enteocode/mfa/pkg/store"
)

// Recovery code defaults.
const (
	DefaultRecoveryCount = 10
	DefaultRecoverySize  = 10
)

// Recovery manages single-use recovery codes. A set can only be created
// for a user with MFA enabled.
type Recovery struct {
	store   *store.Store
	engine  OTPEngine
	emitter eventbus.Emitter
	logger  *slog.Logger
	count   int
	size    int
}

// Enable creates and stores a fresh set of count codes of byteLength random
// bytes each, replacing any previous set. Zero or negative arguments take
// the configured defaults. It returns nil when user has no secret or the
// set could not be created or stored.
func (r *Recovery) Enable(ctx context.Context, user Identifier, count, byteLength int) store.RecoveryCodes {
	if count <= 0 {
		count = r.count
	}
	if byteLength <= 0 {
		byteLength = r.size
	}

	enabled, err := r.store.Has(ctx, user, store.NamespaceSecret)
	if err != nil {
		r.logger.ErrorContext(ctx, "cannot check mfa state",
			logger.UserID(user),
			logger.Error(err),
		)
		return nil
	}
	if !enabled {
		return nil
	}

	codes := make(store.RecoveryCodes, count)
	for codes.Len() < count {
		code, err := r.engine.GenerateSecret(byteLength)
		if err != nil {
			r.logger.ErrorContext(ctx, "cannot generate recovery code",
				logger.UserID(user),
				logger.Error(err),
			)
			return nil
		}
		codes.Add(code)
	}

	if !r.store.SetRecoveryCodes(ctx, user, codes) {
		r.logger.ErrorContext(ctx, "cannot enable mfa recovery for user",
			logger.UserID(user),
			logger.Error(ErrStorageWriteFailed),
		)
		return nil
	}

	r.logger.InfoContext(ctx, "mfa recovery enabled for user",
		logger.UserID(user),
		logger.Count(count),
	)
	r.emitter.Emit(ctx, RecoveryEnabled{User: user, Codes: codes.Slice()})
	return codes
}

// Disable deletes the recovery code set of user. It returns true only when
// a set existed and was removed.
func (r *Recovery) Disable(ctx context.Context, user Identifier) bool {
	if !r.store.Delete(ctx, user, store.NamespaceRecoveryCodes) {
		return false
	}

	r.logger.InfoContext(ctx, "mfa recovery disabled for user", logger.UserID(user))
	r.emitter.Emit(ctx, RecoveryDisabled{User: user})
	return true
}

// Recover consumes code. The code is removed from the stored set before
// RecoveryUsed is emitted; if the write fails Recover returns false and the
// code stays valid.
func (r *Recovery) Recover(ctx context.Context, user Identifier, code string) bool {
	codes := r.store.RecoveryCodes(ctx, user)
	if codes == nil {
		r.logger.WarnContext(ctx, "mfa recovery failed: no recovery codes", logger.UserID(user))
		r.emitter.Emit(ctx, RecoveryFailed{User: user, Code: code})
		return false
	}
	if !codes.Remove(code) {
		r.logger.WarnContext(ctx, "mfa recovery failed: invalid code", logger.UserID(user))
		r.emitter.Emit(ctx, RecoveryFailed{User: user, Code: code})
		return false
	}

	if !r.store.SetRecoveryCodes(ctx, user, codes) {
		r.logger.ErrorContext(ctx, "cannot persist consumed recovery code",
			logger.UserID(user),
			logger.Error(ErrStorageWriteFailed),
		)
		return false
	}

	r.logger.InfoContext(ctx, "mfa recovery succeeded",
		logger.UserID(user),
		logger.Count(codes.Len()),
	)
	r.emitter.Emit(ctx, RecoveryUsed{User: user, Code: code})
	return true
}

// Remaining returns the number of unused codes, or -1 when user has no
// recovery code set.
func (r *Recovery) Remaining(ctx context.Context, user Identifier) int {
	codes := r.store.RecoveryCodes(ctx, user)
	if codes == nil {
		return -1
	}
	return codes.Len()
}
