package artifact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func TestMagicsCacheMissThenHit(t *testing.T) {
	c := openTestCache(t)

	_, _, found, err := c.LoadMagics()
	require.NoError(t, err)
	require.False(t, found)

	var bishop, rook [64]uint64
	bishop[0] = 0xdeadbeef
	rook[63] = 0xcafef00d

	require.NoError(t, c.SaveMagics(bishop, rook))

	gotBishop, gotRook, found, err := c.LoadMagics()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, bishop, gotBishop)
	require.Equal(t, rook, gotRook)
}

func TestWeightsCacheMissThenHit(t *testing.T) {
	c := openTestCache(t)

	_, found, err := c.LoadWeights("/tmp/net.bin")
	require.NoError(t, err)
	require.False(t, found)

	blob := []byte{1, 2, 3, 4, 5}
	require.NoError(t, c.SaveWeights("/tmp/net.bin", blob))

	got, found, err := c.LoadWeights("/tmp/net.bin")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, blob, got)
}
