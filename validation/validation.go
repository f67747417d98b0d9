// Package validation checks Morton codecs against the control vectors, the width boundary
// and the for-loop reference. Checks are exhaustive within their domain: they never stop at the first failure.
package validation

import (
	"fmt"
	"log"

	"github.com/pdok/morton3d/control"
	"github.com/pdok/morton3d/mapslicehelp"
	"github.com/pdok/morton3d/morton"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type CheckKind int

const (
	DecodeCheck CheckKind = iota
	EncodeCheck
	AgreementCheck
)

func (k CheckKind) String() string {
	switch k {
	case DecodeCheck:
		return "decoding"
	case EncodeCheck:
		return "encoding"
	case AgreementCheck:
		return "agreement"
	}
	return fmt.Sprintf("check(%d)", int(k))
}

// Failure is one mismatch
type Failure struct {
	Strategy morton.Strategy
	Check    CheckKind
	Input    string
	Expected string
	Actual   string
}

func (f Failure) String() string {
	return fmt.Sprintf("incorrect %v of %s in method %v: %s != %s", f.Check, f.Input, f.Strategy, f.Actual, f.Expected)
}

// Source produces the random input of CheckAgreement
type Source interface {
	Uint32() uint32
	Uint64() uint64
}

// Report aggregates the outcome of one or more checks
type Report struct {
	Comparisons int
	Failures    []Failure
	perStrategy *orderedmap.OrderedMap[morton.Strategy, int]
}

func NewReport() *Report {
	return &Report{perStrategy: orderedmap.New[morton.Strategy, int]()}
}

func newReportFor[C morton.Code](codecs []morton.Codec[C]) *Report {
	r := NewReport()
	for _, codec := range codecs {
		r.perStrategy.Set(codec.Strategy(), 0)
	}
	return r
}

func (r *Report) compared(s morton.Strategy) {
	r.Comparisons++
	if _, present := r.perStrategy.Get(s); !present {
		r.perStrategy.Set(s, 0)
	}
}

func (r *Report) fail(f Failure) {
	log.Printf("    %v", f)
	r.Failures = append(r.Failures, f)
	count, _ := r.perStrategy.Get(f.Strategy)
	r.perStrategy.Set(f.Strategy, count+1)
}

// Passed reports whether no check failed
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// Failed reports whether any check failed for s
func (r *Report) Failed(s morton.Strategy) bool {
	return r.FailureCount(s) > 0
}

func (r *Report) FailureCount(s morton.Strategy) int {
	count, _ := r.perStrategy.Get(s)
	return count
}

// Strategies returns the checked strategies in the order they were first checked
func (r *Report) Strategies() []morton.Strategy {
	return mapslicehelp.OrderedMapKeys(r.perStrategy)
}

// FailedStrategies returns the strategies with at least one failure, in check order
func (r *Report) FailedStrategies() []morton.Strategy {
	var failed []morton.Strategy
	for p := r.perStrategy.Oldest(); p != nil; p = p.Next() {
		if p.Value > 0 {
			failed = append(failed, p.Key)
		}
	}
	return failed
}

// PassedCount returns the number of checked strategies without failures
func (r *Report) PassedCount() int {
	return mapslicehelp.CountVals(r.perStrategy, 0)
}

// Merge adds the outcome of other to r
func (r *Report) Merge(other *Report) {
	r.Comparisons += other.Comparisons
	r.Failures = append(r.Failures, other.Failures...)
	for p := other.perStrategy.Oldest(); p != nil; p = p.Next() {
		count, _ := r.perStrategy.Get(p.Key)
		r.perStrategy.Set(p.Key, count+p.Value)
	}
}

func (r *Report) Summary() string {
	if r.Passed() {
		return "Passed."
	}
	return fmt.Sprintf("%d of %d comparisons failed (%v)", len(r.Failures), r.Comparisons, r.FailedStrategies())
}

func triple(x, y, z uint32) string {
	return fmt.Sprintf("(%d, %d, %d)", x, y, z)
}

// CheckDecode compares every codec's decode of all codes below control.DecodeDomain with the control triples,
// plus the decode of the widest code
func CheckDecode[C morton.Code](codecs []morton.Codec[C], vectors *control.Vectors) *Report {
	r := newReportFor(codecs)
	for _, codec := range codecs {
		for m := uint16(0); m < control.DecodeDomain; m++ {
			wantX, wantY, wantZ := vectors.Coords(m)
			decodeAndCompare(r, codec, C(m), wantX, wantY, wantZ)
		}
		maxCoord := morton.MaxCoord[C]()
		decodeAndCompare(r, codec, morton.MaxCode[C](), maxCoord, maxCoord, maxCoord)
	}
	return r
}

func decodeAndCompare[C morton.Code](r *Report, codec morton.Codec[C], m C, wantX, wantY, wantZ uint32) {
	r.compared(codec.Strategy())
	x, y, z := codec.Decode(m)
	if x != wantX || y != wantY || z != wantZ {
		r.fail(Failure{
			Strategy: codec.Strategy(),
			Check:    DecodeCheck,
			Input:    fmt.Sprintf("%d", m),
			Expected: triple(wantX, wantY, wantZ),
			Actual:   triple(x, y, z),
		})
	}
}

// CheckEncode compares every codec's encode of all triples below control.EncodeSide with the control codes,
// plus the encode of the widest triple
func CheckEncode[C morton.Code](codecs []morton.Codec[C], vectors *control.Vectors) *Report {
	r := newReportFor(codecs)
	for _, codec := range codecs {
		for x := uint32(0); x < control.EncodeSide; x++ {
			for y := uint32(0); y < control.EncodeSide; y++ {
				for z := uint32(0); z < control.EncodeSide; z++ {
					encodeAndCompare(r, codec, x, y, z, C(vectors.Code(x, y, z)))
				}
			}
		}
		maxCoord := morton.MaxCoord[C]()
		encodeAndCompare(r, codec, maxCoord, maxCoord, maxCoord, morton.MaxCode[C]())
	}
	return r
}

func encodeAndCompare[C morton.Code](r *Report, codec morton.Codec[C], x, y, z uint32, want C) {
	r.compared(codec.Strategy())
	if got := codec.Encode(x, y, z); got != want {
		r.fail(Failure{
			Strategy: codec.Strategy(),
			Check:    EncodeCheck,
			Input:    triple(x, y, z),
			Expected: fmt.Sprintf("%d", want),
			Actual:   fmt.Sprintf("%d", got),
		})
	}
}

// Check runs CheckEncode and CheckDecode
func Check[C morton.Code](codecs []morton.Codec[C], vectors *control.Vectors) *Report {
	r := CheckEncode(codecs, vectors)
	r.Merge(CheckDecode(codecs, vectors))
	return r
}

// CheckAgreement compares every codec with reference on n random in-range triples and n random codes
func CheckAgreement[C morton.Code](codecs []morton.Codec[C], reference morton.Codec[C], source Source, n int) *Report {
	r := newReportFor(codecs)
	maxCoord := morton.MaxCoord[C]()
	maxCode := morton.MaxCode[C]()
	for i := 0; i < n; i++ {
		x, y, z := source.Uint32()&maxCoord, source.Uint32()&maxCoord, source.Uint32()&maxCoord
		m := C(source.Uint64()) & maxCode
		wantM := reference.Encode(x, y, z)
		wantX, wantY, wantZ := reference.Decode(m)
		for _, codec := range codecs {
			r.compared(codec.Strategy())
			if got := codec.Encode(x, y, z); got != wantM {
				r.fail(Failure{
					Strategy: codec.Strategy(),
					Check:    AgreementCheck,
					Input:    "encode" + triple(x, y, z),
					Expected: fmt.Sprintf("%d", wantM),
					Actual:   fmt.Sprintf("%d", got),
				})
			}
			r.compared(codec.Strategy())
			if gotX, gotY, gotZ := codec.Decode(m); gotX != wantX || gotY != wantY || gotZ != wantZ {
				r.fail(Failure{
					Strategy: codec.Strategy(),
					Check:    AgreementCheck,
					Input:    fmt.Sprintf("decode(%d)", m),
					Expected: triple(wantX, wantY, wantZ),
					Actual:   triple(gotX, gotY, gotZ),
				})
			}
		}
	}
	return r
}
