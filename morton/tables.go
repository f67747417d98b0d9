package morton

import "sync"

const (
	// coordinate bits per encode lookup
	fragmentBits = 8
	// code bits per decode lookup, 3 bits of every axis
	chunkBits     = 3 * Axes
	fragmentMask  = 1<<fragmentBits - 1
	chunkMask     = 1<<chunkBits - 1
	encodeEntries = 1 << fragmentBits
	decodeEntries = 1 << chunkBits
	// code bits covered by one encode lookup
	dilatedBits = fragmentBits * Axes
	// coordinate bits recovered per decode lookup
	bitsPerChunk = chunkBits / Axes
)

// Tables are the interleaving lookup tables, one set per bit offset (0 for x, 1 for y, 2 for z).
// They are immutable once built.
type Tables struct {
	// encode[o][b] holds bit i of b at bit 3i+o
	encode [Axes][encodeEntries]uint32
	// decode[o][c] holds bits o, o+3 and o+6 of c at bits 0, 1 and 2
	decode [Axes][decodeEntries]uint8
}

var (
	sharedTables     *Tables
	sharedTablesOnce sync.Once
)

// LoadTables returns the process wide tables, building them on first use
func LoadTables() *Tables {
	sharedTablesOnce.Do(func() {
		sharedTables = BuildTables()
	})
	return sharedTables
}

// BuildTables builds a fresh set of tables
func BuildTables() *Tables {
	t := &Tables{}
	for offset := uint(0); offset < Axes; offset++ {
		for b := uint32(0); b < encodeEntries; b++ {
			var dilated uint32
			for i := uint(0); i < fragmentBits; i++ {
				dilated |= ((b >> i) & 1) << (Axes*i + offset)
			}
			t.encode[offset][b] = dilated
		}
		for c := uint32(0); c < decodeEntries; c++ {
			var compacted uint8
			for i := uint(0); i < bitsPerChunk; i++ {
				compacted |= uint8((c>>(Axes*i+offset))&1) << i
			}
			t.decode[offset][c] = compacted
		}
	}
	return t
}

// EncodeEntry returns the dilated pattern of an 8-bit coordinate fragment at the given bit offset
func (t *Tables) EncodeEntry(offset uint, fragment uint8) uint32 {
	return t.encode[offset][fragment]
}

// DecodeEntry returns the coordinate fragment held at the given bit offset of a 9-bit code chunk
func (t *Tables) DecodeEntry(offset uint, chunk uint16) uint8 {
	return t.decode[offset][chunk&chunkMask]
}
