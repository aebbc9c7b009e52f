package cipher

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// GenerateSecret returns KeySize random bytes.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, KeySize)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Join(ErrFailedToGenerateSecret, err)
	}
	return secret, nil
}

// GenerateEncodedSecret returns a base64-encoded random secret, ready to be
// placed in an environment variable.
func GenerateEncodedSecret() (string, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(secret), nil
}
