// Package kvtest provides a conformance suite for kv.Store implementations.
package kvtest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/enteocode/mfa/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises store against the kv.Store contract. Keys are prefixed with
// the test name so the suite can share a backend with other tests.
func Run(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()
	key := func(t *testing.T, name string) string {
		return fmt.Sprintf("kvtest:%s:%s", t.Name(), name)
	}

	t.Run("missing key", func(t *testing.T) {
		k := key(t, "missing")

		ok, err := store.Has(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok)

		value, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, value)

		existed, err := store.Delete(ctx, k)
		require.NoError(t, err)
		assert.False(t, existed)
	})

	t.Run("set get delete", func(t *testing.T) {
		k := key(t, "value")

		require.NoError(t, store.Set(ctx, k, []byte("payload")))

		ok, err := store.Has(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok)

		value, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), value)

		existed, err := store.Delete(ctx, k)
		require.NoError(t, err)
		assert.True(t, existed)

		ok, err = store.Has(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("overwrite", func(t *testing.T) {
		k := key(t, "overwrite")

		require.NoError(t, store.Set(ctx, k, []byte("first")))
		require.NoError(t, store.Set(ctx, k, []byte("second")))

		value, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), value)

		_, err = store.Delete(ctx, k)
		require.NoError(t, err)
	})

	t.Run("binary payload", func(t *testing.T) {
		k := key(t, "binary")
		payload := []byte{0x00, 0x01, 0xfe, 0xff, 0x00}

		require.NoError(t, store.Set(ctx, k, payload))

		value, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, payload, value)

		_, err = store.Delete(ctx, k)
		require.NoError(t, err)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := store.Has(ctx, "")
		assert.ErrorIs(t, err, kv.ErrEmptyKey)

		_, err = store.Get(ctx, "")
		assert.ErrorIs(t, err, kv.ErrEmptyKey)

		assert.ErrorIs(t, store.Set(ctx, "", []byte("x")), kv.ErrEmptyKey)

		_, err = store.Delete(ctx, "")
		assert.ErrorIs(t, err, kv.ErrEmptyKey)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				k := key(t, fmt.Sprintf("concurrent-%d", i))
				assert.NoError(t, store.Set(ctx, k, []byte{byte(i)}))
				value, err := store.Get(ctx, k)
				assert.NoError(t, err)
				assert.Equal(t, []byte{byte(i)}, value)
				_, err = store.Delete(ctx, k)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}
