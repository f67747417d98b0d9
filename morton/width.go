// Package morton converts 3D unsigned integer coordinates into Morton codes (Z-order) and back.
// Four strategies are offered for both a 32-bit and a 64-bit code width, all producing identical codes:
// a bit-by-bit for-loop (the reference), magic-bits dilation, byte lookup tables,
// and axis-preshifted byte lookup tables.
//
// Bit 3i of a code holds bit i of x, bit 3i+1 holds bit i of y and bit 3i+2 holds bit i of z.
package morton

import (
	"math/bits"

	"github.com/pdok/morton3d/mathhelp"
)

// Code is the width of a Morton code. Coordinates are always uint32.
type Code interface {
	~uint32 | ~uint64
}

type (
	Code32 = uint32
	Code64 = uint64
)

// Axes is the number of interleaved coordinates
const Axes = 3

// Width describes the bit budget of a code width
type Width struct {
	CodeBits  uint   // 32 or 64
	CoordBits uint   // floor(CodeBits / 3)
	MaxCoord  uint32 // 2^CoordBits - 1
	MaxCode   uint64 // 2^(3*CoordBits) - 1
}

func CodeBits[C Code]() uint {
	return uint(bits.Len64(uint64(^C(0))))
}

func CoordBits[C Code]() uint {
	return CodeBits[C]() / Axes
}

func MaxCoord[C Code]() uint32 {
	return mathhelp.LowMask[uint32](CoordBits[C]())
}

func MaxCode[C Code]() C {
	return mathhelp.LowMask[C](Axes * CoordBits[C]())
}

func WidthOf[C Code]() Width {
	return Width{
		CodeBits:  CodeBits[C](),
		CoordBits: CoordBits[C](),
		MaxCoord:  MaxCoord[C](),
		MaxCode:   uint64(MaxCode[C]()),
	}
}

// InRange reports whether all three coordinates fit in CoordBits.
// Codecs themselves never reject input: excess high bits are dropped.
func InRange[C Code](x, y, z uint32) bool {
	maxCoord := MaxCoord[C]()
	return x <= maxCoord && y <= maxCoord && z <= maxCoord
}
