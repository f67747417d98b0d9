package bench

import "github.com/pdok/morton3d/morton"

// Generator is the random source of the random streams
type Generator interface {
	Seed(seed uint32)
	Uint32() uint32
	Uint64() uint64
}

type coordStream interface {
	fill(xs, ys, zs []uint32)
}

type codeStream[C morton.Code] interface {
	fill(ms []C)
}

// linearCoords counts through a size^3 cube, x outermost and z innermost
type linearCoords struct {
	size    uint32
	x, y, z uint32
}

func (s *linearCoords) fill(xs, ys, zs []uint32) {
	for i := range xs {
		xs[i], ys[i], zs[i] = s.x, s.y, s.z
		s.z++
		if s.z == s.size {
			s.z = 0
			s.y++
			if s.y == s.size {
				s.y = 0
				s.x++
			}
		}
	}
}

type randomCoords struct {
	rng      Generator
	maxCoord uint32
}

func (s randomCoords) fill(xs, ys, zs []uint32) {
	for i := range xs {
		xs[i] = s.rng.Uint32() & s.maxCoord
		ys[i] = s.rng.Uint32() & s.maxCoord
		zs[i] = s.rng.Uint32() & s.maxCoord
	}
}

type linearCodes[C morton.Code] struct {
	next C
}

func (s *linearCodes[C]) fill(ms []C) {
	for i := range ms {
		ms[i] = s.next
		s.next++
	}
}

type randomCodes[C morton.Code] struct {
	rng     Generator
	maxCode C
}

func (s randomCodes[C]) fill(ms []C) {
	for i := range ms {
		ms[i] = C(s.rng.Uint64()) & s.maxCode
	}
}
