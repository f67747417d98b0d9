package morton

// forLoop interleaves one bit at a time. It defines what every other strategy must produce.
type forLoop[C Code] struct {
	coordBits uint
}

func newForLoop[C Code]() forLoop[C] {
	return forLoop[C]{coordBits: CoordBits[C]()}
}

func (f forLoop[C]) Strategy() Strategy { return ForLoop }

func (f forLoop[C]) Encode(x, y, z uint32) C {
	var answer C
	for i := uint(0); i < f.coordBits; i++ {
		bit := uint32(1) << i
		if x&bit != 0 {
			answer |= C(1) << (Axes * i)
		}
		if y&bit != 0 {
			answer |= C(1) << (Axes*i + 1)
		}
		if z&bit != 0 {
			answer |= C(1) << (Axes*i + 2)
		}
	}
	return answer
}

func (f forLoop[C]) Decode(m C) (x, y, z uint32) {
	for i := uint(0); i < f.coordBits; i++ {
		bit := C(1) << i
		x |= uint32((m >> (2 * i)) & bit)
		y |= uint32((m >> (2*i + 1)) & bit)
		z |= uint32((m >> (2*i + 2)) & bit)
	}
	return x, y, z
}
