package matrixgame

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	// ErrMalformedInput is returned for empty or ragged payoff matrices.
	ErrMalformedInput = errors.New("malformed payoff matrix")
	// ErrSolverInternal is returned when the simplex iteration cannot proceed,
	// or when a verified solution turns out not to be an equilibrium.
	ErrSolverInternal = errors.New("matrix game solver internal error")
)

const (
	// Pivot entries must exceed this to be eligible.
	positivePivotEpsilon = 1e-10
	// Tolerance used when verifying that a solution is an equilibrium.
	verifyEpsilon = 1e-7
)

// Bound on the number of pivots, per row and column of the game.
var maxPivotsPerChoice = 1000

// Solution is one optimal mixed strategy per player of a zero-sum
// matrix game, along with the value of the game to player 0.
type Solution struct {
	ExpectedValue float64
	// Strategy0 is the row player's strategy: one probability per row.
	Strategy0 []float64
	// Strategy1 is the column player's strategy: one probability per column.
	Strategy1 []float64
}

// label identifies which player's choice a tableau position stands for.
type label struct {
	isRow bool
	index int
}

// Solve finds an equilibrium of the zero-sum game in which player 0 chooses
// a row, player 1 simultaneously chooses a column, and player 0 receives
// payoffs[row][col] (which player 1 loses).
//
// The game is solved exactly with the simplex method on the tableau of the
// equivalent linear program: entries are shifted to be strictly positive,
// the tableau is bordered by a column of 1s and a row of -1s, and pivots are
// taken until the bottom border has no negative entries.
func Solve(payoffs [][]float64) (*Solution, error) {
	if err := checkShape(payoffs); err != nil {
		return nil, err
	}

	nRows, nCols := len(payoffs), len(payoffs[0])
	minVal := payoffs[0][0]
	for _, row := range payoffs {
		for _, v := range row {
			minVal = math.Min(minVal, v)
		}
	}
	shift := 1 - minVal

	tableau := make([][]float64, nRows+1)
	for r, row := range payoffs {
		tableau[r] = allocFloatSlice(nCols + 1)
		for c, v := range row {
			tableau[r][c] = v + shift
		}
		tableau[r][nCols] = 1
	}
	tableau[nRows] = allocFloatSlice(nCols + 1)
	for c := 0; c < nCols; c++ {
		tableau[nRows][c] = -1
	}
	defer func() {
		for _, row := range tableau {
			freeFloatSlice(row)
		}
	}()

	rowLabels := make([]label, nRows)
	for r := range rowLabels {
		rowLabels[r] = label{isRow: true, index: r}
	}
	colLabels := make([]label, nCols)
	for c := range colLabels {
		colLabels[c] = label{isRow: false, index: c}
	}

	// Each pivot strictly improves the objective outside of degenerate
	// steps, so this bound is only reached if the iteration cycles.
	maxPivots := maxPivotsPerChoice * (nRows + nCols)
	nPivots := 0
	for q := enteringColumn(tableau); q >= 0; q = enteringColumn(tableau) {
		if nPivots >= maxPivots {
			return nil, errors.Wrapf(ErrSolverInternal,
				"no convergence after %d pivots on %dx%d game", nPivots, nRows, nCols)
		}

		p, err := leavingRow(tableau, q)
		if err != nil {
			return nil, err
		}

		pivot(tableau, p, q)
		rowLabels[p], colLabels[q] = colLabels[q], rowLabels[p]
		nPivots++
	}

	invCorner := 1 / tableau[nRows][nCols]
	result := &Solution{
		ExpectedValue: invCorner - shift,
		Strategy0:     make([]float64, nRows),
		Strategy1:     make([]float64, nCols),
	}
	for c, l := range colLabels {
		if l.isRow {
			result.Strategy0[l.index] = tableau[nRows][c] * invCorner
		}
	}
	for r, l := range rowLabels {
		if !l.isRow {
			result.Strategy1[l.index] = tableau[r][nCols] * invCorner
		}
	}

	glog.V(4).Infof("Solved %dx%d game in %d pivots: value %v", nRows, nCols, nPivots, result.ExpectedValue)
	return result, nil
}

func checkShape(payoffs [][]float64) error {
	if len(payoffs) == 0 || len(payoffs[0]) == 0 {
		return errors.Wrap(ErrMalformedInput, "payoff matrix is empty")
	}

	for r, row := range payoffs {
		if len(row) != len(payoffs[0]) {
			return errors.Wrapf(ErrMalformedInput, "row %d has %d entries, expected %d",
				r, len(row), len(payoffs[0]))
		}

		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrMalformedInput, "payoff [%d][%d] is %v", r, c, v)
			}
		}
	}

	return nil
}

// enteringColumn returns the first column with a negative entry in the
// bottom border, or -1 if there is none.
func enteringColumn(tableau [][]float64) int {
	bottom := tableau[len(tableau)-1]
	for c := 0; c < len(bottom)-1; c++ {
		if bottom[c] < 0 {
			return c
		}
	}

	return -1
}

// leavingRow returns the row minimizing the ratio of the border column to
// column q, among the rows where column q is positive.
func leavingRow(tableau [][]float64, q int) (int, error) {
	nRows := len(tableau) - 1
	border := len(tableau[0]) - 1
	best := -1
	var minRatio float64
	for r := 0; r < nRows; r++ {
		if tableau[r][q] <= positivePivotEpsilon {
			continue
		}

		if math.Abs(tableau[r][border]) < positivePivotEpsilon {
			tableau[r][border] = 0
		}

		ratio := tableau[r][border] / tableau[r][q]
		if best < 0 || ratio < minRatio {
			best = r
			minRatio = ratio
		}
	}

	if best < 0 {
		return -1, errors.Wrapf(ErrSolverInternal, "no eligible pivot row in column %d", q)
	}

	if minRatio < 0 {
		return -1, errors.Wrapf(ErrSolverInternal, "negative pivot ratio %v in column %d", minRatio, q)
	}

	return best, nil
}

// pivot performs a full Gauss-Jordan pivot of the tableau on entry (p, q).
func pivot(tableau [][]float64, p, q int) {
	pivotRow := tableau[p]
	invPivot := 1 / pivotRow[q]
	for r, row := range tableau {
		if r == p {
			continue
		}

		factor := row[q] * invPivot
		for c := range row {
			if c != q {
				row[c] -= factor * pivotRow[c]
			}
		}
		row[q] = -factor
	}

	for c := range pivotRow {
		if c != q {
			pivotRow[c] *= invPivot
		}
	}
	pivotRow[q] = invPivot
}
