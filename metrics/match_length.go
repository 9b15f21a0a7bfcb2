package metrics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
)

// MatchLength measures the distribution of the number of games played in
// a match, assuming both players follow the equilibrium strategies.
type MatchLength struct{}

func (MatchLength) Info() Info {
	return Info{
		Title: "Match Length Distribution",
		XAxis: "Match Length",
		YAxis: "Probability",
	}
}

// MeasureMatch returns the probability of each match length from 0 to
// 2*GamesToWin-1.
func (MatchLength) MeasureMatch(tree *hearthnash.Tree) (Series, error) {
	distribution, err := MatchLengthDistribution(tree)
	if err != nil {
		return nil, err
	}

	result := make(Series, len(distribution))
	for i, p := range distribution {
		result[i] = Point{X: float64(i), Y: p}
	}

	return result, nil
}

// MatchLengthDistribution returns the probability that the match lasts
// each number of games, indexed by length.
func MatchLengthDistribution(tree *hearthnash.Tree) ([]float64, error) {
	m := &matchLengthMeasurer{
		tree:    tree,
		nLength: 2 * tree.Rules.GamesToWin,
		memo:    make([][]float64, tree.Len()),
	}

	distribution, err := m.measure(0)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, p := range distribution {
		total += p
	}

	if math.Abs(total-1) > 1e-8 {
		return nil, errors.Errorf("match length distribution sums to %v", total)
	}

	return append([]float64(nil), distribution...), nil
}

type matchLengthMeasurer struct {
	tree    *hearthnash.Tree
	nLength int
	// Distribution from each vertex, by arena index.
	memo [][]float64
}

func (m *matchLengthMeasurer) measure(idx int) ([]float64, error) {
	if m.memo[idx] != nil {
		return m.memo[idx], nil
	}

	v := m.tree.Vertex(idx)
	result := make([]float64, m.nLength)
	switch {
	case v.Kind == hearthnash.Outcome:
		length := v.Wins[hearthnash.Player0] + v.Wins[hearthnash.Player1]
		if length >= m.nLength {
			return nil, errors.Errorf("match of length %d is longer than the format allows", length)
		}
		result[length] = 1
	case len(v.Children) == 0:
		return nil, errors.Errorf("vertex %d (%v) has no children", idx, v)
	case v.Kind == hearthnash.Game:
		for _, winner := range []hearthnash.Player{hearthnash.Player0, hearthnash.Player1} {
			p := hearthnash.GameWinProbability(m.tree.Meta, v.CurrentDecks, winner)
			if err := m.addChild(result, v.Children[winner], p); err != nil {
				return nil, err
			}
		}
	case v.Kind.IsDecision():
		s0, s1 := v.Strategies[hearthnash.Player0], v.Strategies[hearthnash.Player1]
		if len(v.Children) != len(s0)*len(s1) {
			return nil, errors.Errorf("vertex %d has %d children for %dx%d strategies",
				idx, len(v.Children), len(s0), len(s1))
		}

		for i, p0 := range s0 {
			for j, p1 := range s1 {
				if err := m.addChild(result, v.Children[i*len(s1)+j], p0*p1); err != nil {
					return nil, err
				}
			}
		}
	default:
		if err := m.addChild(result, v.Children[0], 1); err != nil {
			return nil, err
		}
	}

	m.memo[idx] = result
	return result, nil
}

func (m *matchLengthMeasurer) addChild(result []float64, child int, weight float64) error {
	if weight == 0 {
		return nil
	}

	distribution, err := m.measure(child)
	if err != nil {
		return err
	}

	for i, p := range distribution {
		result[i] += weight * p
	}

	return nil
}
