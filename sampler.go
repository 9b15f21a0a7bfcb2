package hearthnash

import (
	"math/rand"
	"sort"
)

// SamplePath plays out one match by sampling each player's choice from
// their equilibrium strategy and each game's winner from the winrates.
// It returns the arena indices of the vertices visited, ending with an
// Outcome.
func (t *Tree) SamplePath(rng *rand.Rand) []int {
	idx := 0
	path := []int{idx}
	for {
		v := t.Vertex(idx)
		switch {
		case v.Kind == Outcome:
			return path
		case v.Kind == Game:
			winner := Player1
			if rng.Float64() < GameWinProbability(t.Meta, v.CurrentDecks, Player0) {
				winner = Player0
			}
			idx = v.Children[winner]
		case v.Kind.IsDecision():
			i := sampleOne(v.Strategies[Player0], rng.Float64())
			j := sampleOne(v.Strategies[Player1], rng.Float64())
			idx = v.Children[i*v.NumChoices(Player1)+j]
		default:
			idx = v.Children[0]
		}

		path = append(path, idx)
	}
}

// sampleOne selects the index at which the cumulative probability
// first exceeds x.
func sampleOne(p []float64, x float64) int {
	cumulative := make([]float64, len(p))
	total := 0.0
	for i, v := range p {
		total += v
		cumulative[i] = total
	}

	selected := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > x
	})

	// Rounding may leave the total just short of 1.
	if selected == len(p) {
		selected = len(p) - 1
	}

	return selected
}

// CountKind returns the number of distinct vertices of the given kind.
func (t *Tree) CountKind(kind Kind) int {
	n := 0
	for i := range t.vertices {
		if t.vertices[i].Kind == kind {
			n++
		}
	}

	return n
}

// CountOutcomePaths returns the number of distinct ways to reach an Outcome
// from the root, as if the tree had not been collapsed into a DAG.
func (t *Tree) CountOutcomePaths() int {
	counts := make([]int, len(t.vertices))
	for i := range counts {
		counts[i] = -1
	}

	return t.countOutcomePaths(0, counts)
}

func (t *Tree) countOutcomePaths(idx int, counts []int) int {
	if counts[idx] >= 0 {
		return counts[idx]
	}

	v := t.Vertex(idx)
	total := 0
	if v.Kind == Outcome {
		total = 1
	}
	for _, child := range v.Children {
		total += t.countOutcomePaths(child, counts)
	}

	counts[idx] = total
	return total
}
