// Package control holds the 3D Morton control vectors: known-correct pairs that do not depend on any codec.
// `coords` holds the decode of every code below 4096, `codes` the encode of every coordinate triple below 16,
// indexed by z + 16*y + 256*x.
package control

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/perimeterx/marshmallow"
	"golang.org/x/exp/maps"
)

const (
	// DecodeDomain is the number of codes with a control triple
	DecodeDomain = 4096
	// EncodeSide is the exclusive upper bound of each coordinate with a control code
	EncodeSide = 16
)

var (
	//go:embed vectors.json
	embeddedVectorsJSON []byte

	loadEmbedded = sync.OnceValues(func() (*Vectors, error) {
		return Parse(embeddedVectorsJSON)
	})
)

// Vectors are the parsed control vectors
type Vectors struct {
	Description string     `json:"description" default:"3D Morton control vectors"`
	Coordinates [][]uint32 `validate:"len=4096,dive,len=3,dive,lt=16" json:"coords"`
	Codes       []uint64   `validate:"len=4096,dive,lt=4096" json:"codes"`
}

// Load returns the embedded control vectors, parsed once
func Load() (*Vectors, error) {
	return loadEmbedded()
}

// MustLoad is Load for callers that cannot proceed without control vectors
func MustLoad() *Vectors {
	v, err := Load()
	if err != nil {
		panic(fmt.Errorf(`could not load embedded control vectors: %w`, err))
	}
	return v
}

// Parse decodes and validates a control vectors JSON document
func Parse(data []byte) (*Vectors, error) {
	var v Vectors
	if err := defaults.Set(&v); err != nil {
		return nil, err
	}
	unknown, err := marshmallow.Unmarshal(data, &v, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return nil, fmt.Errorf(`could not decode control vectors: %w`, err)
	}
	if len(unknown) > 0 {
		keys := maps.Keys(unknown)
		slices.Sort(keys)
		return nil, fmt.Errorf(`unknown keys %q in control vectors`, keys)
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err = validate.Struct(&v); err != nil {
		return nil, fmt.Errorf(`invalid control vectors: %w`, err)
	}
	return &v, nil
}

// Coords returns the control triple of code m, m < DecodeDomain
func (v *Vectors) Coords(m uint16) (x, y, z uint32) {
	c := v.Coordinates[m]
	return c[0], c[1], c[2]
}

// Code returns the control code of a triple with every coordinate < EncodeSide
func (v *Vectors) Code(x, y, z uint32) uint64 {
	return v.Codes[z+EncodeSide*y+EncodeSide*EncodeSide*x]
}
