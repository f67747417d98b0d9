package morton

import (
	"fmt"
	"testing"

	"github.com/pdok/morton3d/cmwc"

	"github.com/stretchr/testify/require"
)

func TestWidthOf(t *testing.T) {
	require.Equal(t, Width{CodeBits: 32, CoordBits: 10, MaxCoord: 0x3ff, MaxCode: 0x3fffffff}, WidthOf[Code32]())
	require.Equal(t, Width{CodeBits: 64, CoordBits: 21, MaxCoord: 0x1fffff, MaxCode: 0x7fffffffffffffff}, WidthOf[Code64]())
	require.Equal(t, uint32(0x3fffffff), MaxCode[Code32]())
	require.Equal(t, uint64(0x7fffffffffffffff), MaxCode[Code64]())
}

func TestInRange(t *testing.T) {
	require.True(t, InRange[Code64](0x1fffff, 0, 0x1fffff))
	require.False(t, InRange[Code64](0x200000, 0, 0))
	require.True(t, InRange[Code32](0x3ff, 0x3ff, 0x3ff))
	require.False(t, InRange[Code32](0, 0, 0x400))
}

func Test_encode64(t *testing.T) {
	tests := []struct {
		x, y, z uint32
		m       uint64
	}{
		{x: 0b0, y: 0b0, z: 0b0, m: 0b0},
		{x: 0b1, y: 0b0, z: 0b0, m: 0b001},
		{x: 0b0, y: 0b1, z: 0b0, m: 0b010},
		{x: 0b0, y: 0b0, z: 0b1, m: 0b100},
		{x: 0b1, y: 0b1, z: 0b1, m: 0b111},
		{x: 0b10, y: 0b0, z: 0b0, m: 0b001000},
		{x: 0b11, y: 0b0, z: 0b0, m: 0b001001},
		{x: 0xff, y: 0xff, z: 0xff, m: 0xffffff},
		{x: 0x100000, y: 0x0, z: 0x0, m: 0x1000000000000000},
		{x: 0x0, y: 0x0, z: 0x100000, m: 0x4000000000000000},
		{x: 0x1fffff, y: 0x0, z: 0x0, m: 0x1249249249249249},
		{x: 0x1fffff, y: 0x1fffff, z: 0x1fffff, m: 0x7fffffffffffffff},
	}
	for _, codec := range All[Code64]() {
		for _, tt := range tests {
			name := fmt.Sprintf(`%v(%b, %b, %b)`, codec.Strategy(), tt.x, tt.y, tt.z)
			t.Run(name, func(t *testing.T) {
				got := codec.Encode(tt.x, tt.y, tt.z)
				require.Equalf(t, tt.m, got, `%021b, %021b and %021b should interleave into: %064b, got: %064b`, tt.x, tt.y, tt.z, tt.m, got)
			})
		}
	}
}

func Test_decode64(t *testing.T) {
	tests := []struct {
		m       uint64
		x, y, z uint32
	}{
		{m: 0b0, x: 0b0, y: 0b0, z: 0b0},
		{m: 0b111, x: 0b1, y: 0b1, z: 0b1},
		{m: 0b100100, x: 0b0, y: 0b0, z: 0b11},
		{m: 0x1249249249249249, x: 0x1fffff, y: 0x0, z: 0x0},
		{m: 0x2492492492492492, x: 0x0, y: 0x1fffff, z: 0x0},
		{m: 0x4924924924924924, x: 0x0, y: 0x0, z: 0x1fffff},
		{m: 0x7fffffffffffffff, x: 0x1fffff, y: 0x1fffff, z: 0x1fffff},
		// bit 63 is not part of the code
		{m: 0xffffffffffffffff, x: 0x1fffff, y: 0x1fffff, z: 0x1fffff},
	}
	for _, codec := range All[Code64]() {
		for _, tt := range tests {
			name := fmt.Sprintf(`%v(%b)`, codec.Strategy(), tt.m)
			t.Run(name, func(t *testing.T) {
				gotX, gotY, gotZ := codec.Decode(tt.m)
				require.Equalf(t, [3]uint32{tt.x, tt.y, tt.z}, [3]uint32{gotX, gotY, gotZ}, `%064b should deinterleave into: [%021b,%021b,%021b], got: [%021b,%021b,%021b]`, tt.m, tt.x, tt.y, tt.z, gotX, gotY, gotZ)
			})
		}
	}
}

func Test_encode32(t *testing.T) {
	tests := []struct {
		x, y, z uint32
		m       uint32
	}{
		{x: 0b0, y: 0b0, z: 0b0, m: 0b0},
		{x: 0b1, y: 0b1, z: 0b1, m: 0b111},
		{x: 0x200, y: 0x0, z: 0x0, m: 0x8000000},
		{x: 0x0, y: 0x0, z: 0x200, m: 0x20000000},
		{x: 0x3ff, y: 0x0, z: 0x0, m: 0x9249249},
		{x: 0x3ff, y: 0x3ff, z: 0x3ff, m: 0x3fffffff},
		// excess high bits are dropped
		{x: 0x7ff, y: 0xfffff, z: 0xffffffff, m: 0x3fffffff},
		{x: 0x400, y: 0x800, z: 0x1000, m: 0b0},
	}
	for _, codec := range All[Code32]() {
		for _, tt := range tests {
			name := fmt.Sprintf(`%v(%b, %b, %b)`, codec.Strategy(), tt.x, tt.y, tt.z)
			t.Run(name, func(t *testing.T) {
				got := codec.Encode(tt.x, tt.y, tt.z)
				require.Equalf(t, tt.m, got, `%010b, %010b and %010b should interleave into: %032b, got: %032b`, tt.x, tt.y, tt.z, tt.m, got)
			})
		}
	}
}

func Test_decode32(t *testing.T) {
	tests := []struct {
		m       uint32
		x, y, z uint32
	}{
		{m: 0b0, x: 0b0, y: 0b0, z: 0b0},
		{m: 0x9249249, x: 0x3ff, y: 0x0, z: 0x0},
		{m: 0x12492492, x: 0x0, y: 0x3ff, z: 0x0},
		{m: 0x24924924, x: 0x0, y: 0x0, z: 0x3ff},
		{m: 0x3fffffff, x: 0x3ff, y: 0x3ff, z: 0x3ff},
		{m: 0xffffffff, x: 0x3ff, y: 0x3ff, z: 0x3ff},
		{m: 0xc0000000, x: 0x0, y: 0x0, z: 0x0},
	}
	for _, codec := range All[Code32]() {
		for _, tt := range tests {
			name := fmt.Sprintf(`%v(%b)`, codec.Strategy(), tt.m)
			t.Run(name, func(t *testing.T) {
				gotX, gotY, gotZ := codec.Decode(tt.m)
				require.Equal(t, [3]uint32{tt.x, tt.y, tt.z}, [3]uint32{gotX, gotY, gotZ})
			})
		}
	}
}

// every single coordinate bit must land on its own code bit
func testSingleBits[C Code](t *testing.T) {
	coordBits := CoordBits[C]()
	for _, codec := range All[C]() {
		for i := uint(0); i < coordBits; i++ {
			bit := uint32(1) << i
			require.Equal(t, C(1)<<(3*i), codec.Encode(bit, 0, 0), "%v x bit %d", codec.Strategy(), i)
			require.Equal(t, C(1)<<(3*i+1), codec.Encode(0, bit, 0), "%v y bit %d", codec.Strategy(), i)
			require.Equal(t, C(1)<<(3*i+2), codec.Encode(0, 0, bit), "%v z bit %d", codec.Strategy(), i)
		}
	}
}

func TestSingleBits(t *testing.T) {
	t.Run("32", testSingleBits[Code32])
	t.Run("64", testSingleBits[Code64])
}

// sampled over the whole domain with a stride per axis, like an exhaustive search but affordable
func testAgreementStrided[C Code](t *testing.T) {
	reference := New[C](ForLoop)
	maxCoord := MaxCoord[C]()
	stride := maxCoord/61 + 1
	codecs := All[C]()
	for x := uint32(0); x <= maxCoord; x += stride + 2 {
		for y := uint32(0); y <= maxCoord; y += stride + 1 {
			for z := uint32(0); z <= maxCoord; z += stride {
				want := reference.Encode(x, y, z)
				for _, codec := range codecs {
					got := codec.Encode(x, y, z)
					if got != want {
						require.Failf(t, "encode mismatch", "%v(%d, %d, %d) = %d, want %d", codec.Strategy(), x, y, z, got, want)
					}
					gotX, gotY, gotZ := codec.Decode(got)
					if gotX != x || gotY != y || gotZ != z {
						require.Failf(t, "round trip mismatch", "%v decode(%d) = (%d, %d, %d), want (%d, %d, %d)", codec.Strategy(), got, gotX, gotY, gotZ, x, y, z)
					}
				}
			}
		}
	}
}

func TestAgreementStrided(t *testing.T) {
	t.Run("32", testAgreementStrided[Code32])
	t.Run("64", testAgreementStrided[Code64])
}

// random, including out of range input: all strategies truncate the same way
func testAgreementRandom[C Code](t *testing.T) {
	reference := New[C](ForLoop)
	codecs := All[C]()
	rng := cmwc.New(20150101)
	for n := 0; n < 20000; n++ {
		x, y, z := rng.Uint32(), rng.Uint32(), rng.Uint32()
		m := C(rng.Uint64())
		wantM := reference.Encode(x, y, z)
		wantX, wantY, wantZ := reference.Decode(m)
		for _, codec := range codecs {
			require.Equal(t, wantM, codec.Encode(x, y, z), "%v encode(%d, %d, %d)", codec.Strategy(), x, y, z)
			gotX, gotY, gotZ := codec.Decode(m)
			require.Equal(t, [3]uint32{wantX, wantY, wantZ}, [3]uint32{gotX, gotY, gotZ}, "%v decode(%d)", codec.Strategy(), m)
		}
		maxCoord := MaxCoord[C]()
		x, y, z = x&maxCoord, y&maxCoord, z&maxCoord
		for _, codec := range codecs {
			gotX, gotY, gotZ := codec.Decode(codec.Encode(x, y, z))
			require.Equal(t, [3]uint32{x, y, z}, [3]uint32{gotX, gotY, gotZ}, "%v round trip", codec.Strategy())
		}
	}
}

func TestAgreementRandom(t *testing.T) {
	t.Run("32", testAgreementRandom[Code32])
	t.Run("64", testAgreementRandom[Code64])
}

// Z-order is not globally monotone, but it is in every single coordinate,
// and a step along one axis only touches the dilated bits of that axis
func testLocality[C Code](t *testing.T) {
	reference := New[C](ForLoop)
	maxCoord := MaxCoord[C]()
	rng := cmwc.New(42)
	for _, codec := range All[C]() {
		for n := 0; n < 10000; n++ {
			x, y, z := rng.Uint32()&maxCoord, rng.Uint32()&maxCoord, rng.Uint32()&maxCoord
			if x == maxCoord {
				x--
			}
			before := codec.Encode(x, y, z)
			after := codec.Encode(x+1, y, z)
			require.Greater(t, after, before)
			require.Equal(t, reference.Encode(x+1, 0, 0)-reference.Encode(x, 0, 0), after-before)
			require.Zero(t, (after^before)&^reference.Encode(maxCoord, 0, 0), "only x bits change")
			if x%2 == 0 {
				require.Equal(t, C(1), after-before)
			}
		}
	}
}

func TestLocality(t *testing.T) {
	t.Run("32", testLocality[Code32])
	t.Run("64", testLocality[Code64])
}

func TestMustEncode(t *testing.T) {
	codec := New[Code64](MagicBits)
	require.Equal(t, uint64(0x7fffffffffffffff), MustEncode(codec, 0x1fffff, 0x1fffff, 0x1fffff))
	require.Panics(t, func() { MustEncode(codec, 0x200000, 0, 0) })
	require.Panics(t, func() { MustEncode(New[Code32](LUT), 0, 0x400, 0) })
}
