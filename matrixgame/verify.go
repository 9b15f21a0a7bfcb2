package matrixgame

import (
	"math"

	"github.com/pkg/errors"
)

// ExpectedValue returns player 0's expected payoff when both players
// play the given mixed strategies.
func ExpectedValue(payoffs [][]float64, strategy0, strategy1 []float64) (float64, error) {
	if err := checkShape(payoffs); err != nil {
		return 0, err
	}

	if len(strategy0) != len(payoffs) || len(strategy1) != len(payoffs[0]) {
		return 0, errors.Wrapf(ErrMalformedInput,
			"strategies of length %d and %d do not fit a %dx%d game",
			len(strategy0), len(strategy1), len(payoffs), len(payoffs[0]))
	}

	result := 0.0
	for r, row := range payoffs {
		for c, v := range row {
			result += strategy0[r] * strategy1[c] * v
		}
	}

	return result, nil
}

// Verify checks that s is an equilibrium of the given game: each strategy
// is a probability distribution, and neither player can improve their payoff
// by deviating unilaterally. It is enough to check pure deviations, since
// the payoff of any mixed deviation is an average of pure ones.
func (s *Solution) Verify(payoffs [][]float64) error {
	value, err := ExpectedValue(payoffs, s.Strategy0, s.Strategy1)
	if err != nil {
		return err
	}

	if err := checkDistribution(s.Strategy0); err != nil {
		return errors.Wrap(err, "player 0 strategy")
	}
	if err := checkDistribution(s.Strategy1); err != nil {
		return errors.Wrap(err, "player 1 strategy")
	}

	if !(math.Abs(value-s.ExpectedValue) <= verifyEpsilon) {
		return errors.Wrapf(ErrSolverInternal, "strategies yield %v, but game value is %v",
			value, s.ExpectedValue)
	}

	for r, row := range payoffs {
		deviation := 0.0
		for c, v := range row {
			deviation += s.Strategy1[c] * v
		}

		if !(deviation <= value+verifyEpsilon) {
			return errors.Wrapf(ErrSolverInternal,
				"player 0 improves from %v to %v by always playing row %d", value, deviation, r)
		}
	}

	for c := range payoffs[0] {
		deviation := 0.0
		for r, row := range payoffs {
			deviation += s.Strategy0[r] * row[c]
		}

		if !(deviation >= value-verifyEpsilon) {
			return errors.Wrapf(ErrSolverInternal,
				"player 1 improves from %v to %v by always playing column %d", value, deviation, c)
		}
	}

	return nil
}

func checkDistribution(p []float64) error {
	total := 0.0
	for i, v := range p {
		if !(v >= -verifyEpsilon) {
			return errors.Wrapf(ErrSolverInternal, "invalid probability %v for choice %d", v, i)
		}
		total += v
	}

	if !(math.Abs(total-1) <= verifyEpsilon) {
		return errors.Wrapf(ErrSolverInternal, "probabilities sum to %v", total)
	}

	return nil
}
