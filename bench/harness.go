// Package bench times Morton codecs over linear and random streams of growing cubes.
//
// Inputs are generated into a batch buffer before the clock starts and outputs are digested
// after it stops, so a timing bracket only ever holds codec calls.
// Every codec and every repetition sees the identical stream.
package bench

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/pdok/morton3d/mathhelp"
	"github.com/pdok/morton3d/morton"

	"github.com/cespare/xxhash/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Op int

const (
	Encode Op = iota
	Decode
)

func (o Op) String() string {
	if o == Encode {
		return "Encoding"
	}
	return "Decoding"
}

type Order int

const (
	Linear Order = iota
	Random
)

func (o Order) String() string {
	if o == Linear {
		return "LINEAR"
	}
	return "RANDOM"
}

// Result is the measurement of one codec in one Sweep
type Result struct {
	// Average elapsed time per repetition
	Average time.Duration
	// xxhash of the output stream of the first repetition
	Digest uint64
}

// Sweep is one codec comparison: an operation over a stream of Size^3 values
type Sweep struct {
	CodeBits uint
	Size     uint
	Total    uint64
	Op       Op
	Order    Order
	Results  *orderedmap.OrderedMap[morton.Strategy, Result]
}

type harness[C morton.Code] struct {
	cfg      Config
	rng      Generator
	maxCoord uint32
	maxCode  C

	xs, ys, zs []uint32
	ms         []C
	scratch    []byte
}

// Run measures every codec for every configured size in four sweeps:
// encode linear, encode random, decode linear and decode random.
// onSweep, when not nil, is called after every finished sweep.
func Run[C morton.Code](cfg Config, codecs []morton.Codec[C], rng Generator, onSweep func(*Sweep)) (*Report, error) {
	width := morton.WidthOf[C]()
	if err := cfg.Validate(width); err != nil {
		return nil, err
	}
	if len(codecs) == 0 {
		return nil, errors.New(`no codecs to measure`)
	}
	h := &harness[C]{
		cfg:      cfg,
		rng:      rng,
		maxCoord: morton.MaxCoord[C](),
		maxCode:  morton.MaxCode[C](),
		xs:       make([]uint32, cfg.BatchSize),
		ys:       make([]uint32, cfg.BatchSize),
		zs:       make([]uint32, cfg.BatchSize),
		ms:       make([]C, cfg.BatchSize),
		scratch:  make([]byte, 3*4*cfg.BatchSize),
	}
	report := &Report{Width: width, Config: cfg}
	for _, size := range cfg.Sizes {
		for _, op := range []Op{Encode, Decode} {
			for _, order := range []Order{Linear, Random} {
				sweep := &Sweep{
					CodeBits: width.CodeBits,
					Size:     size,
					Total:    mathhelp.Cube(size),
					Op:       op,
					Order:    order,
					Results:  orderedmap.New[morton.Strategy, Result](),
				}
				for _, codec := range codecs {
					var result Result
					if op == Encode {
						result = h.measureEncode(codec, sweep)
					} else {
						result = h.measureDecode(codec, sweep)
					}
					sweep.Results.Set(codec.Strategy(), result)
				}
				report.Sweeps = append(report.Sweeps, sweep)
				if onSweep != nil {
					onSweep(sweep)
				}
			}
		}
	}
	return report, nil
}

func (h *harness[C]) coordStream(sweep *Sweep) coordStream {
	if sweep.Order == Linear {
		return &linearCoords{size: uint32(sweep.Size)}
	}
	h.rng.Seed(h.cfg.Seed)
	return randomCoords{rng: h.rng, maxCoord: h.maxCoord}
}

func (h *harness[C]) codeStream(sweep *Sweep) codeStream[C] {
	if sweep.Order == Linear {
		return &linearCodes[C]{}
	}
	h.rng.Seed(h.cfg.Seed)
	return randomCodes[C]{rng: h.rng, maxCode: h.maxCode}
}

func (h *harness[C]) measureEncode(codec morton.Codec[C], sweep *Sweep) Result {
	var result Result
	var elapsed time.Duration
	for rep := uint(0); rep < h.cfg.Times; rep++ {
		var digest *xxhash.Digest
		if rep == 0 {
			digest = xxhash.New()
		}
		stream := h.coordStream(sweep)
		for remaining := sweep.Total; remaining > 0; {
			n := min(uint64(len(h.ms)), remaining)
			xs, ys, zs, ms := h.xs[:n], h.ys[:n], h.zs[:n], h.ms[:n]
			stream.fill(xs, ys, zs)

			start := time.Now()
			for i := range ms {
				ms[i] = codec.Encode(xs[i], ys[i], zs[i])
			}
			elapsed += time.Since(start)

			if digest != nil {
				h.digestCodes(digest, ms)
			}
			remaining -= n
		}
		if digest != nil {
			result.Digest = digest.Sum64()
		}
	}
	result.Average = elapsed / time.Duration(h.cfg.Times)
	return result
}

func (h *harness[C]) measureDecode(codec morton.Codec[C], sweep *Sweep) Result {
	var result Result
	var elapsed time.Duration
	for rep := uint(0); rep < h.cfg.Times; rep++ {
		var digest *xxhash.Digest
		if rep == 0 {
			digest = xxhash.New()
		}
		stream := h.codeStream(sweep)
		for remaining := sweep.Total; remaining > 0; {
			n := min(uint64(len(h.ms)), remaining)
			xs, ys, zs, ms := h.xs[:n], h.ys[:n], h.zs[:n], h.ms[:n]
			stream.fill(ms)

			start := time.Now()
			for i, m := range ms {
				xs[i], ys[i], zs[i] = codec.Decode(m)
			}
			elapsed += time.Since(start)

			if digest != nil {
				h.digestCoords(digest, xs, ys, zs)
			}
			remaining -= n
		}
		if digest != nil {
			result.Digest = digest.Sum64()
		}
	}
	result.Average = elapsed / time.Duration(h.cfg.Times)
	return result
}

func (h *harness[C]) digestCodes(digest *xxhash.Digest, ms []C) {
	buf := h.scratch[:8*len(ms)]
	for i, m := range ms {
		binary.LittleEndian.PutUint64(buf[8*i:], uint64(m))
	}
	_, _ = digest.Write(buf)
}

func (h *harness[C]) digestCoords(digest *xxhash.Digest, xs, ys, zs []uint32) {
	buf := h.scratch[:12*len(xs)]
	for i := range xs {
		binary.LittleEndian.PutUint32(buf[12*i:], xs[i])
		binary.LittleEndian.PutUint32(buf[12*i+4:], ys[i])
		binary.LittleEndian.PutUint32(buf[12*i+8:], zs[i])
	}
	_, _ = digest.Write(buf)
}
