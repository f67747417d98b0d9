package morton

import "github.com/pdok/morton3d/mathhelp"

// lutLayout is the traversal shared by both table driven codecs
type lutLayout[C Code] struct {
	tables    *Tables
	maxCoord  uint32
	maxCode   C
	fragments uint // coordinate bytes per axis
	chunks    uint // 9-bit code chunks
}

func newLUTLayout[C Code](tables *Tables) lutLayout[C] {
	coordBits := CoordBits[C]()
	return lutLayout[C]{
		tables:    tables,
		maxCoord:  MaxCoord[C](),
		maxCode:   MaxCode[C](),
		fragments: mathhelp.CeilDiv[uint](coordBits, fragmentBits),
		chunks:    mathhelp.CeilDiv[uint](coordBits, bitsPerChunk),
	}
}

// lut looks every coordinate byte up in the offset 0 table and shifts the result into place per axis
type lut[C Code] struct {
	lutLayout[C]
}

func newLUT[C Code](tables *Tables) lut[C] {
	return lut[C]{newLUTLayout[C](tables)}
}

func (l lut[C]) Strategy() Strategy { return LUT }

func (l lut[C]) Encode(x, y, z uint32) C {
	x, y, z = x&l.maxCoord, y&l.maxCoord, z&l.maxCoord
	table := &l.tables.encode[0]
	var answer C
	for i := l.fragments; i > 0; i-- {
		shift := (i - 1) * fragmentBits
		answer = answer<<dilatedBits |
			C(table[(z>>shift)&fragmentMask])<<2 |
			C(table[(y>>shift)&fragmentMask])<<1 |
			C(table[(x>>shift)&fragmentMask])
	}
	return answer
}

func (l lut[C]) Decode(m C) (x, y, z uint32) {
	m &= l.maxCode
	table := &l.tables.decode[0]
	for i := uint(0); i < l.chunks; i++ {
		chunk := uint(m >> (chunkBits * i))
		shift := bitsPerChunk * i
		x |= uint32(table[chunk&chunkMask]) << shift
		y |= uint32(table[(chunk>>1)&chunkMask]) << shift
		z |= uint32(table[(chunk>>2)&chunkMask]) << shift
	}
	return x, y, z
}

// lutShifted uses one table per axis, so looked up values need no axis shift
type lutShifted[C Code] struct {
	lutLayout[C]
}

func newLUTShifted[C Code](tables *Tables) lutShifted[C] {
	return lutShifted[C]{newLUTLayout[C](tables)}
}

func (l lutShifted[C]) Strategy() Strategy { return LUTShifted }

func (l lutShifted[C]) Encode(x, y, z uint32) C {
	x, y, z = x&l.maxCoord, y&l.maxCoord, z&l.maxCoord
	tx, ty, tz := &l.tables.encode[0], &l.tables.encode[1], &l.tables.encode[2]
	var answer C
	for i := l.fragments; i > 0; i-- {
		shift := (i - 1) * fragmentBits
		answer = answer<<dilatedBits |
			C(tz[(z>>shift)&fragmentMask]) |
			C(ty[(y>>shift)&fragmentMask]) |
			C(tx[(x>>shift)&fragmentMask])
	}
	return answer
}

func (l lutShifted[C]) Decode(m C) (x, y, z uint32) {
	m &= l.maxCode
	tx, ty, tz := &l.tables.decode[0], &l.tables.decode[1], &l.tables.decode[2]
	for i := uint(0); i < l.chunks; i++ {
		chunk := uint(m>>(chunkBits*i)) & chunkMask
		shift := bitsPerChunk * i
		x |= uint32(tx[chunk]) << shift
		y |= uint32(ty[chunk]) << shift
		z |= uint32(tz[chunk]) << shift
	}
	return x, y, z
}
