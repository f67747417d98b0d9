package cmwc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_Seed(t *testing.T) {
	g := New(1234)
	first := make([]uint32, 10000)
	for i := range first {
		first[i] = g.Uint32()
	}
	g.Seed(1234)
	for i := range first {
		require.Equal(t, first[i], g.Uint32(), "value %d after reseed", i)
	}
	// neighbouring seeds only differ in the low bits of the initial state,
	// so their streams overlap in places, but never entirely
	other := New(1235)
	second := make([]uint32, len(first))
	for i := range second {
		second[i] = other.Uint32()
	}
	require.NotEqual(t, first, second)
}

func TestGenerator_independent(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 5000; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
	a.Uint32()
	require.NotEqual(t, a.Uint32(), b.Uint32())
}

func TestGenerator_Uint64(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 1000; i++ {
		hi, lo := b.Uint32(), b.Uint32()
		require.Equal(t, uint64(hi)<<32|uint64(lo), a.Uint64())
	}
}

// every bit is set about half of the time
func TestGenerator_bitBalance(t *testing.T) {
	const n = 100000
	g := New(20150101)
	var counts [32]int
	for i := 0; i < n; i++ {
		v := g.Uint32()
		for bit := 0; bit < 32; bit++ {
			counts[bit] += int(v >> bit & 1)
		}
	}
	for bit, count := range counts {
		require.InDelta(t, n/2, count, n/50, "bit %d", bit)
	}
}
