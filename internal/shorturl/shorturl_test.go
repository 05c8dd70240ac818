package shorturl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-salt", 5)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, id := range []uint{1, 2, 42, 1000, 987654} {
		code, err := codec.Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(code), 5)
		assert.False(t, seen[code])
		seen[code] = true

		got, err := codec.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("test-salt", 5)
	require.NoError(t, err)

	for _, code := range []string{"", "!!!!!", "zzzzzzzzzzzzzzzzzzzz"} {
		_, err := codec.Decode(code)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}
}

func TestSaltChangesCodes(t *testing.T) {
	a, err := NewCodec("one", 5)
	require.NoError(t, err)
	b, err := NewCodec("two", 5)
	require.NoError(t, err)

	codeA, err := a.Encode(7)
	require.NoError(t, err)
	codeB, err := b.Encode(7)
	require.NoError(t, err)
	assert.NotEqual(t, codeA, codeB)
}
