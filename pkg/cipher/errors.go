package cipher

import "errors"

var (
	// Encryption/decryption errors
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidEnvelope  = errors.New("invalid envelope: too short")

	// Key errors
	ErrKeyDerivationFailed    = errors.New("key derivation failed")
	ErrFailedToGenerateSecret = errors.New("failed to generate cipher secret")
)
