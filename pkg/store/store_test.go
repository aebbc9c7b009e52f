package store_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/enteocode/mfa/pkg/cipher"
	"github.com/enteocode/mfa/pkg/kv/memory"
	"github.com/enteocode/mfa/pkg/logger"
	"github.com/enteocode/mfa/pkg/serializer"
	"github.com/enteocode/mfa/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV fails every operation.
type failingKV struct{}

var errBackend = errors.New("backend unavailable")

func (failingKV) Has(context.Context, string) (bool, error)    { return false, errBackend }
func (failingKV) Get(context.Context, string) ([]byte, error)  { return nil, errBackend }
func (failingKV) Set(context.Context, string, []byte) error    { return errBackend }
func (failingKV) Delete(context.Context, string) (bool, error) { return false, errBackend }

func TestKey(t *testing.T) {
	t.Parallel()
	key := store.Key("mfa", "alice@example.com", store.NamespaceSecret)

	parts := strings.Split(key, ":")
	require.Len(t, parts, 3)
	assert.Equal(t, "mfa", parts[0])
	assert.Equal(t, "secret", parts[1])

	id, err := uuid.Parse(parts[2])
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
	assert.NotContains(t, key, "alice")

	assert.Equal(t, key, store.Key("mfa", "alice@example.com", store.NamespaceSecret), "derivation is deterministic")
	assert.NotEqual(t, key, store.Key("mfa", "alice@example.com", store.NamespaceRecoveryCodes))
	assert.NotEqual(t, key, store.Key("mfa", "bob@example.com", store.NamespaceSecret))
}

func TestSecretRoundTrip(t *testing.T) {
	t.Parallel()
	serializers := map[string]serializer.Serializer{
		"bson": serializer.NewBSON(),
		"json": serializer.NewJSON(),
	}
	for name, sr := range serializers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			backend := memory.New()
			s := store.New(backend,
				store.WithCipher(cipher.New([]byte("k"))),
				store.WithSerializer(sr),
			)

			assert.Equal(t, "", s.Secret(ctx, "1"))
			require.True(t, s.SetSecret(ctx, "1", "JBSWY3DPEHPK3PXP"))
			assert.Equal(t, "JBSWY3DPEHPK3PXP", s.Secret(ctx, "1"))

			ok, err := s.Has(ctx, "1", store.NamespaceSecret)
			require.NoError(t, err)
			assert.True(t, ok)

			raw, err := backend.Get(ctx, store.Key(store.DefaultRoot, "1", store.NamespaceSecret))
			require.NoError(t, err)
			assert.False(t, bytes.Contains(raw, []byte("JBSWY3DPEHPK3PXP")), "payload must be encrypted at rest")
		})
	}
}

func TestNamespaceAsymmetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.New(memory.New())

	assert.Equal(t, "", s.Secret(ctx, "1"))
	assert.Nil(t, s.RecoveryCodes(ctx, "1"))
}

func TestRecoveryCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.New(memory.New(), store.WithCipher(cipher.New([]byte("k"))))

	codes := store.NewRecoveryCodes("AAAA", "BBBB", "CCCC")
	require.True(t, s.SetRecoveryCodes(ctx, "1", codes))

	loaded := s.RecoveryCodes(ctx, "1")
	assert.Equal(t, codes, loaded)

	loaded.Remove("AAAA")
	loaded.Remove("BBBB")
	loaded.Remove("CCCC")
	require.True(t, s.SetRecoveryCodes(ctx, "1", loaded))

	exhausted := s.RecoveryCodes(ctx, "1")
	require.NotNil(t, exhausted, "an exhausted set stays persisted")
	assert.Equal(t, 0, exhausted.Len())
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.New(memory.New())

	assert.False(t, s.Delete(ctx, "1", store.NamespaceSecret))

	require.True(t, s.SetSecret(ctx, "1", "S"))
	assert.True(t, s.Delete(ctx, "1", store.NamespaceSecret))
	assert.Equal(t, "", s.Secret(ctx, "1"))
	assert.False(t, s.Delete(ctx, "1", store.NamespaceSecret))
}

func TestUndecryptableValueIsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := memory.New()

	writer := store.New(backend, store.WithCipher(cipher.New([]byte("old-key"))))
	require.True(t, writer.SetSecret(ctx, "1", "S"))

	reader := store.New(backend, store.WithCipher(cipher.New([]byte("new-key"))))
	assert.Equal(t, "", reader.Secret(ctx, "1"))

	require.NoError(t, backend.Set(ctx, store.Key(store.DefaultRoot, "1", store.NamespaceRecoveryCodes), []byte("garbage")))
	assert.Nil(t, reader.RecoveryCodes(ctx, "1"))
}

func TestUndecryptableValueLoggedOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := memory.New()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs), logger.WithJSONFormatter())

	writer := store.New(backend, store.WithCipher(cipher.New([]byte("old-key"))))
	require.True(t, writer.SetSecret(ctx, "1", "S"))

	reader := store.New(backend,
		store.WithCipher(cipher.New([]byte("new-key"), cipher.WithLogger(log))),
		store.WithLogger(log),
	)
	assert.Equal(t, "", reader.Secret(ctx, "1"))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "failed to load value")
	assert.Contains(t, lines[0], `"level":"WARN"`)
}

func TestRoot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := memory.New()
	s := store.New(backend, store.WithRoot("tenant-a"))

	require.True(t, s.SetSecret(ctx, "1", "S"))
	ok, err := backend.Has(ctx, store.Key("tenant-a", "1", store.NamespaceSecret))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackendFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.New(failingKV{})

	_, err := s.Has(ctx, "1", store.NamespaceSecret)
	assert.ErrorIs(t, err, store.ErrReadFailed)
	assert.ErrorIs(t, err, errBackend)

	assert.False(t, s.SetSecret(ctx, "1", "S"))
	assert.Equal(t, "", s.Secret(ctx, "1"))
	assert.False(t, s.Delete(ctx, "1", store.NamespaceSecret))
}

func TestRecoveryCodesSet(t *testing.T) {
	t.Parallel()
	rc := store.NewRecoveryCodes("B", "A", "B")
	assert.Equal(t, 2, rc.Len())
	assert.Equal(t, []string{"A", "B"}, rc.Slice())

	assert.False(t, rc.Add("A"))
	assert.True(t, rc.Add("C"))
	assert.True(t, rc.Has("C"))
	assert.True(t, rc.Remove("C"))
	assert.False(t, rc.Remove("C"))

	clone := rc.Clone()
	clone.Remove("A")
	assert.True(t, rc.Has("A"))

	var empty store.RecoveryCodes
	assert.False(t, empty.Has("A"))
	assert.Nil(t, empty.Clone())
}
