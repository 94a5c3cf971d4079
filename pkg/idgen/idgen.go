// Package idgen generates random identifiers, coordinates and synthetic
// datasets for load testing.
//
// A [Generator] is fully determined by its seed: two generators created with
// the same seed produce the same sequence of values, including affiliation
// ids, so perftest runs are reproducible.
package idgen

import (
	"encoding/binary"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Generator draws values from a seeded pseudo-random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntIn returns a uniformly distributed integer in [lo, hi]. The bounds may
// be given in either order.
func (g *Generator) IntIn(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// Coord returns a coordinate with both components in [-limit, limit].
func (g *Generator) Coord(limit int) (x, y int) {
	return g.IntIn(-limit, limit), g.IntIn(-limit, limit)
}

// Year returns a year in [lo, hi].
func (g *Generator) Year(lo, hi uint16) uint16 {
	return uint16(g.IntIn(int(lo), int(hi)))
}

// Float returns a value in [0, 1).
func (g *Generator) Float() float64 { return g.rng.Float64() }

// UUID returns a version 4 UUID drawn from the generator.
func (g *Generator) UUID() uuid.UUID {
	// The reader never fails, so neither does NewRandomFromReader.
	return uuid.Must(uuid.NewRandomFromReader(randReader{g.rng}))
}

// AffiliationID returns a short upper-case id derived from a random UUID.
func (g *Generator) AffiliationID() string {
	hex := strings.ReplaceAll(g.UUID().String(), "-", "")
	return "AFF" + strings.ToUpper(hex[:10])
}

type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += len(buf) {
		binary.LittleEndian.PutUint64(buf[:], r.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
