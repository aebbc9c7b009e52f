package serializer_test

import (
	"testing"

	"github.com/enteocode/mfa/pkg/serializer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializers(t *testing.T) {
	t.Parallel()
	serializers := map[string]serializer.Serializer{
		"bson": serializer.NewBSON(),
		"json": serializer.NewJSON(),
	}

	for name, s := range serializers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("string", func(t *testing.T) {
				data, err := s.Marshal("JBSWY3DPEHPK3PXP")
				require.NoError(t, err)

				var out string
				require.NoError(t, s.Unmarshal(data, &out))
				assert.Equal(t, "JBSWY3DPEHPK3PXP", out)
			})

			t.Run("string slice", func(t *testing.T) {
				codes := []string{"AAAA", "BBBB", "CCCC"}
				data, err := s.Marshal(codes)
				require.NoError(t, err)

				var out []string
				require.NoError(t, s.Unmarshal(data, &out))
				assert.Equal(t, codes, out)
			})

			t.Run("non-pointer target", func(t *testing.T) {
				data, err := s.Marshal("x")
				require.NoError(t, err)

				var out string
				assert.ErrorIs(t, s.Unmarshal(data, out), serializer.ErrInvalidTarget)
			})

			t.Run("garbage input", func(t *testing.T) {
				var out string
				assert.ErrorIs(t, s.Unmarshal([]byte{0x01, 0x02}, &out), serializer.ErrUnmarshalFailed)
			})
		})
	}
}
