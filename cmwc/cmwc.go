// Package cmwc implements Marsaglia's complementary-multiply-with-carry generator (lag 4096).
// It produces the random coordinate and code streams of the benchmarks.
// A Generator is not safe for concurrent use, give every goroutine its own.
package cmwc

const (
	lag        = 4096
	multiplier = 18782
	phi        = 0x9e3779b9
	initCarry  = 362436
	r          = 0xfffffffe
)

type Generator struct {
	q     [lag]uint32
	carry uint32
	i     uint32
}

// New returns a Generator seeded with seed
func New(seed uint32) *Generator {
	g := &Generator{}
	g.Seed(seed)
	return g
}

// Seed resets the complete state, after which the generator repeats the stream of New(seed)
func (g *Generator) Seed(seed uint32) {
	g.q[0] = seed
	g.q[1] = seed + phi
	g.q[2] = seed + phi + phi
	for i := uint32(3); i < lag; i++ {
		g.q[i] = g.q[i-3] ^ g.q[i-2] ^ phi ^ i
	}
	g.carry = initCarry
	g.i = lag - 1
}

// Uint32 returns a uniformly distributed value in [0, 2^32)
func (g *Generator) Uint32() uint32 {
	g.i = (g.i + 1) & (lag - 1)
	t := uint64(multiplier)*uint64(g.q[g.i]) + uint64(g.carry)
	g.carry = uint32(t >> 32)
	x := uint32(t) + g.carry
	if x < g.carry {
		x++
		g.carry++
	}
	g.q[g.i] = r - x
	return g.q[g.i]
}

// Uint64 returns a uniformly distributed value in [0, 2^64), high half first
func (g *Generator) Uint64() uint64 {
	hi := uint64(g.Uint32())
	return hi<<32 | uint64(g.Uint32())
}
