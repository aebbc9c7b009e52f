package otp_test

import (
	"encoding/base32"
	"testing"
	"time"

	pquerna "github.com/pquerna/otp"

	"github.com/enteocode/mfa/pkg/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 6238 appendix B, SHA1 seed "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0).UTC() }
}

func TestGenerateSecret(t *testing.T) {
	t.Parallel()
	engine := otp.NewEngine()

	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{name: "default size", size: otp.DefaultSecretSize},
		{name: "minimum size", size: otp.MinSecretSize},
		{name: "short", size: 4},
		{name: "zero", size: 0, wantErr: otp.ErrInvalidSecretSize},
		{name: "negative", size: -1, wantErr: otp.ErrInvalidSecretSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			secret, err := engine.GenerateSecret(tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, secret, "=")

			raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
			require.NoError(t, err)
			assert.Len(t, raw, tt.size)
		})
	}

	a, _ := engine.GenerateSecret(otp.DefaultSecretSize)
	b, _ := engine.GenerateSecret(otp.DefaultSecretSize)
	assert.NotEqual(t, a, b)
}

func TestGenerateTokenRFCVectors(t *testing.T) {
	t.Parallel()
	engine := otp.NewEngine()

	tests := []struct {
		at     int64
		digits int
		want   string
	}{
		{at: 59, digits: 8, want: "94287082"},
		{at: 59, digits: 6, want: "287082"},
		{at: 1111111109, digits: 8, want: "07081804"},
		{at: 1111111109, digits: 6, want: "081804"},
		{at: 1234567890, digits: 8, want: "89005924"},
	}
	for _, tt := range tests {
		token, err := engine.GenerateToken(rfcSecret, otp.TokenOptions{
			Digits: tt.digits,
			Epoch:  time.Unix(tt.at, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, token, "t=%d digits=%d", tt.at, tt.digits)
	}
}

func TestGenerateTokenStep(t *testing.T) {
	t.Parallel()
	engine := otp.NewEngine(otp.WithClock(fixedClock(1111111109)))

	defaultStep, err := engine.GenerateToken(rfcSecret, otp.TokenOptions{})
	require.NoError(t, err)
	assert.Equal(t, "081804", defaultStep)

	longStep, err := engine.GenerateToken(rfcSecret, otp.TokenOptions{Step: 5 * time.Minute})
	require.NoError(t, err)
	assert.Len(t, longStep, 6)

	_, err = engine.GenerateToken(rfcSecret, otp.TokenOptions{Digits: 7})
	assert.ErrorIs(t, err, otp.ErrUnsupportedDigits)
}

func TestVerify(t *testing.T) {
	t.Parallel()
	const base = 1111111109

	tests := []struct {
		name  string
		now   int64
		token string
		want  bool
	}{
		{name: "current step", now: base, token: "081804", want: true},
		{name: "previous step within skew", now: base + 30, token: "081804", want: true},
		{name: "next step within skew", now: base - 30, token: "081804", want: true},
		{name: "outside window", now: base + 60, token: "081804", want: false},
		{name: "wrong token", now: base, token: "000000", want: false},
		{name: "malformed token", now: base, token: "08180a", want: false},
		{name: "wrong length", now: base, token: "0818040", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := otp.NewEngine(otp.WithClock(fixedClock(tt.now)))
			assert.Equal(t, tt.want, engine.Verify(rfcSecret, tt.token))
		})
	}

	t.Run("invalid secret", func(t *testing.T) {
		t.Parallel()
		engine := otp.NewEngine(otp.WithClock(fixedClock(base)))
		assert.False(t, engine.Verify("not base32!", "081804"))
	})
}

func TestGenerateThenVerify(t *testing.T) {
	t.Parallel()
	engine := otp.NewEngine(otp.WithDigits(8))
	secret, err := engine.GenerateSecret(otp.DefaultSecretSize)
	require.NoError(t, err)

	token, err := engine.GenerateToken(secret, otp.TokenOptions{})
	require.NoError(t, err)
	assert.Len(t, token, 8)
	assert.True(t, engine.Verify(secret, token))
}

func TestGenerateKeyURI(t *testing.T) {
	t.Parallel()
	engine := otp.NewEngine()
	secret, err := engine.GenerateSecret(otp.DefaultSecretSize)
	require.NoError(t, err)

	uri, err := engine.GenerateKeyURI(secret, "Acme", "alice@example.com")
	require.NoError(t, err)

	key, err := pquerna.NewKeyFromURL(uri)
	require.NoError(t, err)
	assert.Equal(t, "totp", key.Type())
	assert.Equal(t, "Acme", key.Issuer())
	assert.Equal(t, "alice@example.com", key.AccountName())
	assert.Equal(t, secret, key.Secret())
	assert.Equal(t, uint64(30), key.Period())
	assert.Equal(t, pquerna.DigitsSix, key.Digits())
	assert.Equal(t, pquerna.AlgorithmSHA1, key.Algorithm())

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		_, err := engine.GenerateKeyURI(secret, "", "alice")
		assert.ErrorIs(t, err, otp.ErrMissingIssuer)

		_, err = engine.GenerateKeyURI(secret, "Acme", "")
		assert.ErrorIs(t, err, otp.ErrMissingAccountName)

		_, err = engine.GenerateKeyURI("!!!", "Acme", "alice")
		assert.ErrorIs(t, err, otp.ErrInvalidSecret)
	})
}

func TestIsToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token  string
		digits int
		want   bool
	}{
		{"123456", 6, true},
		{"000000", 6, true},
		{"12345678", 8, true},
		{"12345", 6, false},
		{"1234567", 6, false},
		{"12a456", 6, false},
		{" 12345", 6, false},
		{"１２３４５６", 6, false},
		{"", 6, false},
		{"123456", 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, otp.IsToken(tt.token, tt.digits), "token=%q digits=%d", tt.token, tt.digits)
	}
}
