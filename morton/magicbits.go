package morton

// Dilation masks, from the contiguous coordinate to every third bit.
// Each step shifts left by the named amount, ORs and masks.
const (
	mask64Coord = 0b0000000000000000000000000000000000000000000111111111111111111111 // 0x1fffff
	mask64By32  = 0b0000000000011111000000000000000000000000000000001111111111111111 // 0x1f00000000ffff
	mask64By16  = 0b0000000000011111000000000000000011111111000000000000000011111111 // 0x1f0000ff0000ff
	mask64By8   = 0b0001000000001111000000001111000000001111000000001111000000001111 // 0x100f00f00f00f00f
	mask64By4   = 0b0001000011000011000011000011000011000011000011000011000011000011 // 0x10c30c30c30c30c3
	mask64By2   = 0b0001001001001001001001001001001001001001001001001001001001001001 // 0x1249249249249249

	mask32Coord = 0b00000000000000000000001111111111 // 0x3ff
	mask32By16  = 0b00000011000000000000000011111111 // 0x30000ff
	mask32By8   = 0b00000011000000001111000000001111 // 0x300f00f
	mask32By4   = 0b00000011000011000011000011000011 // 0x30c30c3
	mask32By2   = 0b00001001001001001001001001001001 // 0x9249249
)

func dilate64(v uint32) uint64 {
	d := uint64(v) & mask64Coord
	d = (d | d<<32) & mask64By32
	d = (d | d<<16) & mask64By16
	d = (d | d<<8) & mask64By8
	d = (d | d<<4) & mask64By4
	d = (d | d<<2) & mask64By2
	return d
}

// compact64 is the inverse of dilate64 for the bit-plane at bit 0
func compact64(m uint64) uint32 {
	c := m & mask64By2
	c = (c | c>>2) & mask64By4
	c = (c | c>>4) & mask64By8
	c = (c | c>>8) & mask64By16
	c = (c | c>>16) & mask64By32
	c = (c | c>>32) & mask64Coord
	return uint32(c)
}

func dilate32(v uint32) uint32 {
	d := v & mask32Coord
	d = (d | d<<16) & mask32By16
	d = (d | d<<8) & mask32By8
	d = (d | d<<4) & mask32By4
	d = (d | d<<2) & mask32By2
	return d
}

func compact32(m uint32) uint32 {
	c := m & mask32By2
	c = (c | c>>2) & mask32By4
	c = (c | c>>4) & mask32By8
	c = (c | c>>8) & mask32By16
	c = (c | c>>16) & mask32Coord
	return c
}

// magicBits spreads each coordinate over every third bit with a fixed mask/shift sequence.
// The width specific sequence is picked once, at construction.
type magicBits[C Code] struct {
	dilate  func(v uint32) C
	compact func(m C) uint32
}

func newMagicBits[C Code]() magicBits[C] {
	if CodeBits[C]() == 64 {
		return magicBits[C]{
			dilate:  func(v uint32) C { return C(dilate64(v)) },
			compact: func(m C) uint32 { return compact64(uint64(m)) },
		}
	}
	return magicBits[C]{
		dilate:  func(v uint32) C { return C(dilate32(v)) },
		compact: func(m C) uint32 { return compact32(uint32(m)) },
	}
}

func (b magicBits[C]) Strategy() Strategy { return MagicBits }

func (b magicBits[C]) Encode(x, y, z uint32) C {
	return b.dilate(x) | b.dilate(y)<<1 | b.dilate(z)<<2
}

func (b magicBits[C]) Decode(m C) (x, y, z uint32) {
	return b.compact(m), b.compact(m >> 1), b.compact(m >> 2)
}
