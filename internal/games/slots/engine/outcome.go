package engine

import "math/rand/v2"

// OutcomeVector holds one symbol index per reel.
type OutcomeVector []int

// Clone returns an independent copy of the vector.
func (v OutcomeVector) Clone() OutcomeVector {
	if v == nil {
		return nil
	}
	out := make(OutcomeVector, len(v))
	copy(out, v)
	return out
}

// Source supplies uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// globalSource draws from the auto-seeded math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Generator produces independent random outcomes, one per reel.
// It reuses one buffer across calls.
type Generator struct {
	src Source
	buf OutcomeVector
}

// NewGenerator creates a generator. A nil source uses the process-wide
// random generator.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// Generate fills and returns the internal buffer with reels indices in
// [0, symbols). The returned vector is only valid until the next call;
// callers that keep it must Clone it. It panics if symbols < 1.
func (g *Generator) Generate(reels, symbols int) OutcomeVector {
	if cap(g.buf) < reels {
		g.buf = make(OutcomeVector, reels)
	}
	g.buf = g.buf[:reels]
	for i := range g.buf {
		g.buf[i] = g.src.IntN(symbols)
	}
	return g.buf
}
