// Package cipher provides the envelope encryption used to protect MFA
// secrets and recovery codes at rest.
//
// Two implementations share the Cipher interface:
//
//   - the AEAD cipher, which encrypts payloads with AES-256-GCM under a key
//     derived per payload from a shared secret with scrypt;
//   - the pass-through cipher, used when no secret is configured, which
//     returns its input unchanged in both directions.
//
// New picks the implementation from the secret it is given, so callers never
// branch on whether encryption is configured.
//
// # Envelope Layout
//
// Every encrypted payload is a single byte slice:
//
//	IV (12 bytes) | Salt (16 bytes) | Tag (16 bytes) | Ciphertext
//
// A fresh IV and salt are drawn from crypto/rand on every call, so the same
// plaintext encrypts to a different envelope each time. The salt feeds scrypt
// (N=16384, r=8, p=1) to derive the 32-byte AES key.
//
// # Usage
//
//	import "github.com/enteocode/mfa/pkg/cipher"
//
//	c := cipher.New([]byte(os.Getenv("MFA_CIPHER_KEY")), cipher.WithLogger(log))
//
//	envelope, err := c.Encrypt([]byte("JBSWY3DPEHPK3PXP"))
//	if err != nil {
//		// handle error
//	}
//
//	plain, err := c.Decrypt(envelope)
//	if errors.Is(err, cipher.ErrDecryptionFailed) {
//		// treat as "no value"
//	}
//
// # Error Handling
//
// Decrypt never panics on malformed input. Short envelopes, a wrong secret or
// a tampered payload all produce ErrDecryptionFailed; the failure is logged by
// the cipher, and callers are expected to treat it as an absent value.
//
// # Key Generation
//
// GenerateSecret and GenerateEncodedSecret produce random secrets suitable
// for the MFA_CIPHER_KEY environment variable. The cmd sub-directory contains
// a small program that prints one.
package cipher
