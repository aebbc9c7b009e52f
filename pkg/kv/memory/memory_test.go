package memory_test

import (
	"context"
	"testing"

	"github.com/enteocode/mfa/pkg/kv"
	"github.com/enteocode/mfa/pkg/kv/kvtest"
	"github.com/enteocode/mfa/pkg/kv/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	t.Parallel()
	kvtest.Run(t, memory.New())
}

func TestValuesAreCopied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.New()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"k"}, s.Keys())

	require.NoError(t, s.Close())

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrClosed)
	assert.ErrorIs(t, s.Set(ctx, "k", nil), kv.ErrClosed)
}
