package morton

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// Strategy identifies one of the encode/decode algorithms
type Strategy int

const (
	ForLoop Strategy = iota
	MagicBits
	LUT
	LUTShifted
)

var strategyNames = [...]string{
	ForLoop:    "for-loop",
	MagicBits:  "magic-bits",
	LUT:        "lut",
	LUTShifted: "lut-shifted",
}

// Strategies returns all strategies, the reference (ForLoop) first
func Strategies() []Strategy {
	return []Strategy{ForLoop, MagicBits, LUT, LUTShifted}
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy accepts a strategy name in any casing, e.g. "lut-shifted", "LUTShifted" or "lut_shifted"
func ParseStrategy(name string) (Strategy, error) {
	kebab := strcase.ToKebab(name)
	for _, s := range Strategies() {
		if strategyNames[s] == kebab {
			return s, nil
		}
	}
	return 0, fmt.Errorf(`unknown strategy %q, expected one of %v`, name, Strategies())
}

// Codec encodes and decodes 3D Morton codes with one Strategy
type Codec[C Code] interface {
	Strategy() Strategy
	Encode(x, y, z uint32) C
	Decode(m C) (x, y, z uint32)
}

// New returns the codec for the given strategy. Table driven codecs share LoadTables.
func New[C Code](s Strategy) Codec[C] {
	switch s {
	case ForLoop:
		return newForLoop[C]()
	case MagicBits:
		return newMagicBits[C]()
	case LUT:
		return newLUT[C](LoadTables())
	case LUTShifted:
		return newLUTShifted[C](LoadTables())
	}
	panic(fmt.Errorf(`cannot make codec for %v`, s))
}

// All returns one codec per strategy, in Strategies order
func All[C Code]() []Codec[C] {
	strategies := Strategies()
	codecs := make([]Codec[C], len(strategies))
	for i, s := range strategies {
		codecs[i] = New[C](s)
	}
	return codecs
}

// Select returns the codecs for the given strategy names, or All when names is empty
func Select[C Code](names []string) ([]Codec[C], error) {
	if len(names) == 0 {
		return All[C](), nil
	}
	codecs := make([]Codec[C], 0, len(names))
	for _, name := range names {
		s, err := ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, New[C](s))
	}
	return codecs, nil
}

// MustEncode encodes with codec, panicking when a coordinate does not fit the width
func MustEncode[C Code](codec Codec[C], x, y, z uint32) C {
	if !InRange[C](x, y, z) {
		panic(fmt.Errorf(`cannot make %d-bit Morton code out of %v, %v and %v`, CodeBits[C](), x, y, z))
	}
	return codec.Encode(x, y, z)
}
