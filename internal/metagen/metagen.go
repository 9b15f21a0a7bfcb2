// Package metagen generates random winrate matrices for simulated metas.
package metagen

import (
	"math/rand"

	"github.com/pkg/errors"
)

// MetaType identifies the distribution random metas are drawn from.
type MetaType int

const (
	// PureRandom draws every matchup uniformly from [0, 1).
	PureRandom MetaType = iota
	// LegendRank10 resembles the matchups of the top of the ladder.
	LegendRank10
	// Rank11To20 resembles the matchups of the middle of the ladder.
	Rank11To20
)

var metaTypeStr = [...]string{
	"PureRandom",
	"LegendRank10",
	"Rank11To20",
}

func (t MetaType) String() string {
	if t < 0 || int(t) >= len(metaTypeStr) {
		return "Unknown"
	}

	return metaTypeStr[t]
}

// Generator draws random winrate matrices from a seeded source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Winrates returns a random n x n winrate matrix of the given meta type.
func (g *Generator) Winrates(n int, metaType MetaType) ([][]float64, error) {
	if n < 1 {
		return nil, errors.Errorf("cannot generate a meta with %d decks", n)
	}

	switch metaType {
	case PureRandom:
		return g.pureRandom(n), nil
	default:
		return nil, errors.Errorf("no generator for meta type %v", metaType)
	}
}

// pureRandom fills the upper triangle uniformly at random, and the lower
// triangle with the complementary winrates.
func (g *Generator) pureRandom(n int) [][]float64 {
	winrates := make([][]float64, n)
	for r := range winrates {
		winrates[r] = make([]float64, n)
	}

	for r := 0; r < n; r++ {
		winrates[r][r] = 0.5
		for c := r + 1; c < n; c++ {
			winrates[r][c] = g.rng.Float64()
			winrates[c][r] = 1 - winrates[r][c]
		}
	}

	return winrates
}
