package metrics

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash"
)

// Epsilons are the skill advantages, as a shift in matchup winrate,
// at which skill sensitivity is measured.
var Epsilons = []float64{0.0025, 0.005, 0.01, 0.02, 0.04, 0.08, 0.16}

// SkillSensitivityWide measures how much a player's match victory
// probability grows when they are slightly better with every one of their
// decks. Each player in turn plays with mirrored copies of the decks, whose
// matchups against the opponent are shifted in their favor by epsilon.
type SkillSensitivityWide struct {
	// Epsilons to measure at. Defaults to Epsilons.
	Epsilons []float64
	// Evaluator solves the perturbed matches.
	Evaluator hearthnash.Evaluator
}

func (SkillSensitivityWide) Info() Info {
	return Info{
		Title: "Skill Sensitivity (Wide)",
		XAxis: "Epsilon Matchup Winrates",
		YAxis: "Delta Match Victory Probability",
	}
}

// MeasureMatch returns the change in victory probability at each epsilon,
// averaged over which player has the advantage.
func (s SkillSensitivityWide) MeasureMatch(tree *hearthnash.Tree) (Series, error) {
	epsilons := s.Epsilons
	if epsilons == nil {
		epsilons = Epsilons
	}

	winrates := tree.Meta.Winrates()
	result := make(Series, len(epsilons))
	for i, eps := range epsilons {
		result[i].X = eps
		// Player 1's advantage is a negative shift seen from player 0.
		for _, b := range []struct {
			player hearthnash.Player
			shift  float64
		}{
			{hearthnash.Player0, eps},
			{hearthnash.Player1, -eps},
		} {
			delta, err := deltaVictoryProbability(s.Evaluator, tree, widePerturbation(winrates, b.shift), b.player)
			if err != nil {
				return nil, errors.Wrapf(err, "wide skill sensitivity at epsilon %v for %v", eps, b.player)
			}

			result[i].Y += delta / 2
		}
	}

	return result, nil
}

// SkillSensitivityTall measures how much a player's match victory
// probability grows when they are slightly better with a single deck,
// averaged over each of their decks.
type SkillSensitivityTall struct {
	// Epsilons to measure at. Defaults to Epsilons.
	Epsilons []float64
	// Evaluator solves the perturbed matches.
	Evaluator hearthnash.Evaluator
}

func (SkillSensitivityTall) Info() Info {
	return Info{
		Title: "Skill Sensitivity (Tall)",
		XAxis: "Epsilon Matchup Winrates",
		YAxis: "Delta Match Victory Probability",
	}
}

// MeasureMatch returns the change in victory probability at each epsilon,
// averaged over which player has the advantage and with which deck.
func (s SkillSensitivityTall) MeasureMatch(tree *hearthnash.Tree) (Series, error) {
	epsilons := s.Epsilons
	if epsilons == nil {
		epsilons = Epsilons
	}

	winrates := tree.Meta.Winrates()
	startingDecks := tree.StartingDecks()
	result := make(Series, len(epsilons))
	for i, eps := range epsilons {
		result[i].X = eps
		for _, player := range []hearthnash.Player{hearthnash.Player0, hearthnash.Player1} {
			playerDecks := startingDecks[player]
			for _, deck := range playerDecks {
				// Player 1 plays the mirrored copy of their deck.
				boosted := deck
				if player == hearthnash.Player1 {
					boosted += len(winrates)
				}

				delta, err := deltaVictoryProbability(s.Evaluator, tree, tallPerturbation(winrates, eps, boosted), player)
				if err != nil {
					return nil, errors.Wrapf(err, "tall skill sensitivity at epsilon %v for %v deck %d", eps, player, deck)
				}

				result[i].Y += delta / float64(2*len(playerDecks))
			}
		}
	}

	return result, nil
}

// deltaVictoryProbability evaluates the match again with player 1 playing
// the mirrored copies of their decks in the given 2N x 2N winrates, and
// returns the change in the victory probability of the given player.
func deltaVictoryProbability(evaluator hearthnash.Evaluator, tree *hearthnash.Tree,
	perturbed [][]float64, player hearthnash.Player) (float64, error) {
	meta, err := hearthnash.NewMetaModel(perturbed, nil)
	if err != nil {
		return 0, err
	}
	meta = meta.WithMetaType(tree.Meta.MetaType())

	n := tree.Meta.N()
	startingDecks := tree.StartingDecks()
	mirrored := make([]int, len(startingDecks[hearthnash.Player1]))
	for i, deck := range startingDecks[hearthnash.Player1] {
		mirrored[i] = deck + n
	}

	perturbedTree, err := evaluator.Evaluate([][]int{startingDecks[hearthnash.Player0], mirrored}, tree.Rules, meta)
	if err != nil {
		return 0, err
	}

	delta := perturbedTree.VictoryProbabilities()[player] - tree.VictoryProbabilities()[player]
	glog.V(2).Infof("%v victory probability %v => %v", player,
		tree.VictoryProbabilities()[player], perturbedTree.VictoryProbabilities()[player])
	return delta, nil
}

// widePerturbation returns a 2N x 2N winrate matrix in which decks N..2N-1
// mirror decks 0..N-1, and every matchup of an original deck against
// a mirrored one is shifted by epsilon in favor of the original.
func widePerturbation(winrates [][]float64, epsilon float64) [][]float64 {
	n := len(winrates)
	result := newMatrix(2 * n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			result[r][c] = winrates[r][c]
			result[r+n][c+n] = winrates[r][c]
			result[r][c+n] = clamp(winrates[r][c] + epsilon)
			result[r+n][c] = clamp(winrates[r][c] - epsilon)
		}
	}

	return result
}

// tallPerturbation returns a 2N x 2N winrate matrix in which decks N..2N-1
// mirror decks 0..N-1, and the given deck's matchups are shifted by epsilon
// in its favor.
func tallPerturbation(winrates [][]float64, epsilon float64, deck int) [][]float64 {
	n := len(winrates)
	result := newMatrix(2 * n)
	for r := range result {
		for c := range result[r] {
			x := winrates[r%n][c%n]
			if c == deck {
				x -= epsilon
			}
			if r == deck {
				x += epsilon
			}
			result[r][c] = clamp(x)
		}
	}

	return result
}

func newMatrix(n int) [][]float64 {
	result := make([][]float64, n)
	for i := range result {
		result[i] = make([]float64, n)
	}

	return result
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
