// Package mfa manages multi-factor authentication for users: enabling and
// disabling a TOTP secret, verifying one-time tokens, issuing and consuming
// single-use recovery codes, and resolving which user presents which token
// from an HTTP request, a gRPC call, a NATS message or a custom transport.
//
// # Wiring
//
// New assembles the module on top of any kv.Store backend:
//
//	cfg, err := mfa.LoadConfig() // MFA_ISSUER, MFA_CIPHER_KEY, ...
//	if err != nil {
//		return err
//	}
//	m, err := mfa.New(cfg, memory.New(),
//		mfa.WithLogger(logger.New(logger.WithJSONFormatter())),
//		mfa.WithEmitter(eventbus.Async(publisher)),
//	)
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
// Secrets and recovery codes are serialized (BSON by default), encrypted
// with AES-256-GCM when MFA_CIPHER_KEY is set, and stored under
// root:namespace:uuid keys that never contain the raw user identifier.
//
// # Lifecycle
//
//	svc := m.Service()
//	secret := svc.Enable(ctx, user)                          // "" on failure
//	uri, _ := svc.GenerateKeyURI(ctx, user)                 // otpauth://...
//	img, _ := svc.GenerateQRCode(ctx, user, qrcode.FormatPNG)
//	err := svc.Verify(ctx, user, token)                     // ErrNotEnabled, ErrTokenInvalid
//
//	codes := m.Recovery().Enable(ctx, user, 0, 0)           // defaults: 10 codes of 10 bytes
//	ok := m.Recovery().Recover(ctx, user, code)
//
// Disabling MFA also deletes the recovery codes of the user.
//
// # Events
//
// Every state change emits an event (mfa.enabled, mfa.disabled, mfa.failed,
// mfa.recovery.enabled, mfa.recovery.disabled, mfa.recovery.used,
// mfa.recovery.failed) on the local bus and on every emitter given with
// WithEmitter. Events carrying secrets implement eventbus.Redactor so that
// publishers strip them before they leave the process.
//
// # Credentials
//
// Credentials resolves a credentials.Context through the registry; the
// built-in extractors read X-MFA-Token / X-User-ID headers, the matching
// gRPC metadata and NATS headers. Middleware and UnaryServerInterceptor
// reject unverified calls.
//
// # Errors
//
// Precondition and verification failures are returned as sentinel errors.
// Storage and decryption failures are logged and reported as empty results
// ("", nil, false).
package mfa
