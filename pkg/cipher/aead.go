package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/crypto/scrypt"
)

const (
	IVSize   = 12
	SaltSize = 16
	TagSize  = 16
	KeySize  = 32 // AES-256

	// MinEnvelopeSize is the size of an envelope wrapping an empty payload.
	MinEnvelopeSize = IVSize + SaltSize + TagSize

	// scrypt cost parameters
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

type aead struct {
	secret []byte
	logger *slog.Logger
}

func (c *aead) Enabled() bool { return true }

// Encrypt returns IV | Salt | Tag | Ciphertext.
func (c *aead) Encrypt(data []byte) ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	gcm, err := c.gcm(salt)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	// Seal appends the tag to the ciphertext; the envelope stores it in front.
	sealed := gcm.Seal(nil, iv, data, nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	envelope := make([]byte, 0, MinEnvelopeSize+len(ciphertext))
	envelope = append(envelope, iv...)
	envelope = append(envelope, salt...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)

	return envelope, nil
}

// Decrypt opens an envelope. Failures are reported as ErrDecryptionFailed
// and only logged at debug level; callers own the user-facing log.
func (c *aead) Decrypt(envelope []byte) ([]byte, error) {
	plain, err := c.open(envelope)
	if err != nil {
		c.logger.Debug("failed to decrypt envelope",
			slog.Int("size", len(envelope)),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plain, nil
}

func (c *aead) open(envelope []byte) ([]byte, error) {
	if len(envelope) < MinEnvelopeSize {
		return nil, ErrInvalidEnvelope
	}

	iv := envelope[:IVSize]
	salt := envelope[IVSize : IVSize+SaltSize]
	tag := envelope[IVSize+SaltSize : MinEnvelopeSize]
	ciphertext := envelope[MinEnvelopeSize:]

	gcm, err := c.gcm(salt)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, err
	}
	if plain == nil {
		plain = []byte{}
	}
	return plain, nil
}

func (c *aead) gcm(salt []byte) (stdcipher.AEAD, error) {
	key, err := deriveKey(c.secret, salt)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return stdcipher.NewGCM(block)
}

func deriveKey(secret, salt []byte) ([]byte, error) {
	key, err := scrypt.Key(secret, salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// clearBytes zeroes key material once the block cipher has been built.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
