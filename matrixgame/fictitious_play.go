package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// FictitiousPlay approximates an equilibrium of the zero-sum game with the
// given payoffs to player 0. In each of nIter rounds both players
// simultaneously best respond to the other's empirical play so far, or with
// probability mixingLambda pick uniformly at random.
//
// The returned strategies are each player's empirical play, and
// ExpectedValue is the payoff to player 0 when both are played.
func FictitiousPlay(payoffs [][]float64, nIter int, mixingLambda float64, rng *rand.Rand) (*Solution, error) {
	if err := checkShape(payoffs); err != nil {
		return nil, err
	}

	if nIter <= 0 {
		return nil, errors.Errorf("fictitious play needs at least one round, got %d", nIter)
	}

	nRows, nCols := len(payoffs), len(payoffs[0])
	rowCounts := make([]int, nRows)
	colCounts := make([]int, nCols)
	// Cumulative payoff of each choice against the opponent's play so far.
	rowUtility := make([]float64, nRows)
	colUtility := make([]float64, nCols)
	logEvery := nIter / 10
	for i := 1; i <= nIter; i++ {
		r := rng.Intn(nRows)
		if rng.Float64() >= mixingLambda {
			r = argMax(rowUtility, rng)
		}

		c := rng.Intn(nCols)
		if rng.Float64() >= mixingLambda {
			c = argMax(colUtility, rng)
		}

		rowCounts[r]++
		colCounts[c]++
		for k := range rowUtility {
			rowUtility[k] += payoffs[k][c]
		}
		for k := range colUtility {
			colUtility[k] -= payoffs[r][k]
		}

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(2).Infof("After %d rounds of fictitious play: %v vs %v",
				i, normalize(rowCounts), normalize(colCounts))
		}
	}

	result := &Solution{
		Strategy0: normalize(rowCounts),
		Strategy1: normalize(colCounts),
	}

	var err error
	result.ExpectedValue, err = ExpectedValue(payoffs, result.Strategy0, result.Strategy1)
	return result, err
}

// Bounds returns the payoff player 0 is guaranteed by playing s.Strategy0,
// and the payoff player 1 holds them to by playing s.Strategy1. The value of
// the game lies between the two.
func Bounds(payoffs [][]float64, s *Solution) (lower, upper float64, err error) {
	if _, err := ExpectedValue(payoffs, s.Strategy0, s.Strategy1); err != nil {
		return 0, 0, err
	}

	lower, upper = math.Inf(1), math.Inf(-1)
	for c := range payoffs[0] {
		v := 0.0
		for r, row := range payoffs {
			v += s.Strategy0[r] * row[c]
		}
		lower = math.Min(lower, v)
	}

	for _, row := range payoffs {
		v := 0.0
		for c, x := range row {
			v += s.Strategy1[c] * x
		}
		upper = math.Max(upper, v)
	}

	return lower, upper, nil
}

// CrossCheck checks the value of solution against the bounds given by
// nIter rounds of fictitious play on the same game.
func CrossCheck(payoffs [][]float64, solution *Solution, nIter int, rng *rand.Rand) error {
	approx, err := FictitiousPlay(payoffs, nIter, 0, rng)
	if err != nil {
		return err
	}

	lower, upper, err := Bounds(payoffs, approx)
	if err != nil {
		return err
	}

	if !(solution.ExpectedValue >= lower-verifyEpsilon && solution.ExpectedValue <= upper+verifyEpsilon) {
		return errors.Wrapf(ErrSolverInternal, "value %v is outside of [%v, %v] found by fictitious play",
			solution.ExpectedValue, lower, upper)
	}

	glog.V(3).Infof("Value %v is within [%v, %v]", solution.ExpectedValue, lower, upper)
	return nil
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	if total == 0 {
		return result
	}

	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

// argMax returns the index of the largest value, breaking ties at random.
func argMax(vs []float64, rng *rand.Rand) int {
	best := math.Inf(-1)
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		} else if v == best && rng.Intn(2) == 1 {
			bestIdx = i
		}
	}

	return bestIdx
}
