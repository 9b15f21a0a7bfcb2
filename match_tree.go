package hearthnash

import (
	"expvar"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/hearthnash/decks"
	"github.com/timpalpant/hearthnash/matrixgame"
)

var (
	verticesBuilt  = expvar.NewInt("vertices_built")
	memoHits       = expvar.NewInt("vertices_built/memo_hits")
	verticesSolved = expvar.NewInt("vertices_built/solved")
)

// Solver for the matrix game at each decision vertex.
var solveMatrixGame = matrixgame.Solve

// Tree is a fully solved match tree.
//
// Vertices are stored in a flat arena and refer to their children by index.
// Identical states reached by different move orders share one vertex, so the
// tree is really a DAG. The vertex at index 0 is the Root.
//
// A Tree is never modified after Evaluate returns it.
type Tree struct {
	Rules FormatRules
	Meta  *MetaModel

	vertices []Vertex
}

// Root returns the root vertex of the match.
func (t *Tree) Root() *Vertex {
	return &t.vertices[0]
}

// Vertex returns the vertex at arena index i.
func (t *Tree) Vertex(i int) *Vertex {
	return &t.vertices[i]
}

// Len returns the number of distinct vertices in the tree.
func (t *Tree) Len() int {
	return len(t.vertices)
}

// Vertices returns the arena of vertices, addressed by index.
// The returned slice must not be modified.
func (t *Tree) Vertices() []Vertex {
	return t.vertices
}

// VictoryProbabilities returns each player's probability of winning
// the match under equilibrium play.
func (t *Tree) VictoryProbabilities() [2]float64 {
	return t.Root().VictoryProbabilities
}

// Game returns the matrix game solved at decision vertex i: player 0's
// victory probability after each pair of choices, and the equilibrium
// strategies played there.
func (t *Tree) Game(i int) ([][]float64, *matrixgame.Solution, error) {
	v := t.Vertex(i)
	if !v.Kind.IsDecision() {
		return nil, nil, errors.Errorf("vertex %d is a %v, not a decision", i, v.Kind)
	}

	nRows, nCols := v.NumChoices(Player0), v.NumChoices(Player1)
	payoffs := make([][]float64, nRows)
	for r := range payoffs {
		payoffs[r] = make([]float64, nCols)
		for c := range payoffs[r] {
			payoffs[r][c] = t.Vertex(v.Children[r*nCols+c]).VictoryProbabilities[Player0]
		}
	}

	solution := &matrixgame.Solution{
		ExpectedValue: v.VictoryProbabilities[Player0],
		Strategy0:     v.Strategies[Player0],
		Strategy1:     v.Strategies[Player1],
	}
	return payoffs, solution, nil
}

// StartingDecks returns the decks each player brought to the match.
func (t *Tree) StartingDecks() [2][]int {
	root := t.Root()
	return [2][]int{
		root.DecksRemaining[Player0].AsSlice(),
		root.DecksRemaining[Player1].AsSlice(),
	}
}

// Evaluator builds and solves match trees.
type Evaluator struct {
	// Verify checks that every solved payoff matrix is an equilibrium.
	// It does not change any result, and is slow.
	Verify bool
}

// Evaluate builds the match tree for the given starting decks with the
// default Evaluator.
func Evaluate(startingDecks [][]int, rules FormatRules, meta *MetaModel) (*Tree, error) {
	return Evaluator{}.Evaluate(startingDecks, rules, meta)
}

// Evaluate builds the match tree in which player p starts with the decks in
// startingDecks[p], and solves the equilibrium of every simultaneous choice
// bottom-up.
//
// Each call has its own memo of states, so concurrent calls are safe.
func (e Evaluator) Evaluate(startingDecks [][]int, rules FormatRules, meta *MetaModel) (*Tree, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	remaining, err := checkStartingDecks(startingDecks, rules, meta)
	if err != nil {
		return nil, err
	}

	b := &builder{
		rules:  rules,
		meta:   meta,
		verify: e.Verify,
		memo:   make(map[stateKey]int),
	}

	root := Vertex{
		Kind:               Root,
		DecksRemaining:     remaining,
		PreviousGameWinner: NoPlayer,
		Winner:             NoPlayer,
	}
	if _, err := b.build(root); err != nil {
		return nil, errors.Wrapf(err, "evaluating %v vs %v under %v",
			remaining[Player0], remaining[Player1], rules)
	}

	tree := &Tree{Rules: rules, Meta: meta, vertices: b.vertices}
	glog.V(1).Infof("Evaluated %v vs %v under %v: %d vertices (%d memo hits), victory probabilities %v",
		remaining[Player0], remaining[Player1], rules, tree.Len(), b.memoHits, tree.VictoryProbabilities())
	return tree, nil
}

func checkStartingDecks(startingDecks [][]int, rules FormatRules, meta *MetaModel) ([2]decks.Set, error) {
	var result [2]decks.Set
	if meta == nil {
		return result, errors.Wrap(ErrEvaluationPrecondition, "no meta model given")
	}

	if len(startingDecks) != 2 {
		return result, errors.Wrapf(ErrEvaluationPrecondition,
			"must give a list of decks for each of 2 players, got %d", len(startingDecks))
	}

	if meta.N() > decks.MaxDecks {
		return result, errors.Wrapf(ErrEvaluationPrecondition,
			"meta has %d decks, at most %d are supported", meta.N(), decks.MaxDecks)
	}

	for p, playerDecks := range startingDecks {
		if len(playerDecks) != rules.DecksPerPlayer {
			return result, errors.Wrapf(ErrEvaluationPrecondition,
				"%v has %d decks, format %v requires %d", Player(p), len(playerDecks), rules, rules.DecksPerPlayer)
		}

		for _, deck := range playerDecks {
			if deck < 0 || deck >= meta.N() {
				return result, errors.Wrapf(ErrEvaluationPrecondition,
					"%v deck index %d is outside of the %d decks in the meta", Player(p), deck, meta.N())
			}

			if result[p].Contains(deck) {
				return result, errors.Wrapf(ErrEvaluationPrecondition,
					"%v brings deck %d more than once", Player(p), deck)
			}
			result[p].Add(deck)
		}
	}

	return result, nil
}

// builder holds the state of a single call to Evaluate.
type builder struct {
	rules  FormatRules
	meta   *MetaModel
	verify bool

	vertices []Vertex
	memo     map[stateKey]int
	memoHits int
}

// build returns the arena index of the solved vertex for the state of v,
// creating and solving it if the state has not been seen yet.
func (b *builder) build(v Vertex) (int, error) {
	key := v.key()
	if idx, ok := b.memo[key]; ok {
		memoHits.Add(1)
		b.memoHits++
		return idx, nil
	}

	idx := len(b.vertices)
	b.vertices = append(b.vertices, v)
	// States only move forward through the match, so a vertex is never
	// reached again while its own children are being built.
	b.memo[key] = idx
	verticesBuilt.Add(1)

	var err error
	switch v.Kind {
	case Root:
		err = b.solveRoot(idx, v)
	case Protect:
		err = b.solveProtect(idx, v)
	case Ban:
		err = b.solveBan(idx, v)
	case DeckChoice:
		err = b.solveDeckChoice(idx, v)
	case Game:
		err = b.solveGame(idx, v)
	case Outcome:
		b.solveOutcome(idx, v)
	default:
		panic(errors.Errorf("unimplemented vertex kind: %v", v.Kind))
	}

	if err != nil {
		return -1, err
	}

	glog.V(3).Infof("Solved vertex %d: %v => %v", idx, &b.vertices[idx], b.vertices[idx].VictoryProbabilities)
	return idx, nil
}

func (b *builder) solveRoot(idx int, v Vertex) error {
	var child Vertex
	switch {
	case b.rules.Protects > 0:
		child = newProtectVertex(v.Wins, v.DecksRemaining)
	case b.rules.Bans > 0:
		child = newBanVertex(v.Wins, v.DecksRemaining, [2]decks.Set{})
	default:
		child = newDeckChoiceVertex(v.Wins, v.DecksRemaining)
	}

	c, err := b.build(child)
	if err != nil {
		return err
	}

	b.vertices[idx].Children = []int{c}
	b.vertices[idx].VictoryProbabilities = b.vertices[c].VictoryProbabilities
	return nil
}

func (b *builder) solveProtect(idx int, v Vertex) error {
	p0Protects := v.DecksRemaining[Player0].Subsets(b.rules.Protects)
	p1Protects := v.DecksRemaining[Player1].Subsets(b.rules.Protects)
	return b.solveSimultaneous(idx, len(p0Protects), len(p1Protects), func(i, j int) Vertex {
		protected := [2]decks.Set{p0Protects[i], p1Protects[j]}
		if b.rules.Bans > 0 {
			return newBanVertex(v.Wins, v.DecksRemaining, protected)
		}

		return newDeckChoiceVertex(v.Wins, v.DecksRemaining)
	})
}

func (b *builder) solveBan(idx int, v Vertex) error {
	// Each player bans among the opponent's unprotected decks.
	p0Bans := v.DecksRemaining[Player1].Difference(v.DecksProtected[Player1]).Subsets(b.rules.Bans)
	p1Bans := v.DecksRemaining[Player0].Difference(v.DecksProtected[Player0]).Subsets(b.rules.Bans)
	return b.solveSimultaneous(idx, len(p0Bans), len(p1Bans), func(i, j int) Vertex {
		remaining := [2]decks.Set{
			v.DecksRemaining[Player0].Difference(p1Bans[j]),
			v.DecksRemaining[Player1].Difference(p0Bans[i]),
		}
		return newDeckChoiceVertex(v.Wins, remaining)
	})
}

func (b *builder) solveDeckChoice(idx int, v Vertex) error {
	p0Options := b.deckOptions(v, Player0)
	p1Options := b.deckOptions(v, Player1)
	return b.solveSimultaneous(idx, len(p0Options), len(p1Options), func(i, j int) Vertex {
		return newGameVertex(v.Wins, v.DecksRemaining, [2]int{p0Options[i], p1Options[j]})
	})
}

// deckOptions returns the decks player p may choose from at a DeckChoice.
func (b *builder) deckOptions(v Vertex, p Player) []int {
	if v.HasPreviousDecks && !b.rules.MaySwitch(p, v.PreviousGameWinner) {
		return []int{v.PreviousDecks[p]}
	}

	return v.DecksRemaining[p].AsSlice()
}

func (b *builder) solveGame(idx int, v Vertex) error {
	children := make([]int, 2)
	var victoryProbabilities [2]float64
	for _, winner := range []Player{Player0, Player1} {
		loser := winner.Opponent()
		wins := v.Wins
		wins[winner]++

		remaining := v.DecksRemaining
		if b.rules.RemoveWinnerDeck {
			remaining[winner] = remaining[winner].Without(v.CurrentDecks[winner])
		}
		if b.rules.RemoveLoserDeck {
			remaining[loser] = remaining[loser].Without(v.CurrentDecks[loser])
		}

		var child Vertex
		if wins[winner] >= b.rules.GamesToWin {
			child = newOutcomeVertex(wins, remaining, winner)
		} else {
			child = newDeckChoiceVertexAfterGame(wins, remaining, v.CurrentDecks, winner)
		}

		c, err := b.build(child)
		if err != nil {
			return err
		}
		children[winner] = c

		p := GameWinProbability(b.meta, v.CurrentDecks, winner)
		childProbabilities := b.vertices[c].VictoryProbabilities
		victoryProbabilities[winner] += p * childProbabilities[winner]
		victoryProbabilities[loser] += p * childProbabilities[loser]
	}

	b.vertices[idx].Children = children
	b.vertices[idx].VictoryProbabilities = victoryProbabilities
	return nil
}

func (b *builder) solveOutcome(idx int, v Vertex) {
	b.vertices[idx].VictoryProbabilities[v.Winner] = 1
}

// solveSimultaneous builds the children of a decision vertex, where player 0
// has nRows choices and player 1 has nCols, and solves the matrix game of
// player 0's victory probability in each child.
func (b *builder) solveSimultaneous(idx, nRows, nCols int, newChild func(i, j int) Vertex) error {
	children := make([]int, 0, nRows*nCols)
	payoffs := make([][]float64, nRows)
	for i := range payoffs {
		payoffs[i] = make([]float64, nCols)
		for j := range payoffs[i] {
			c, err := b.build(newChild(i, j))
			if err != nil {
				return err
			}

			children = append(children, c)
			payoffs[i][j] = b.vertices[c].VictoryProbabilities[Player0]
		}
	}

	solution, err := b.solve(payoffs)
	if err != nil {
		return errors.Wrapf(err, "solving %v", &b.vertices[idx])
	}

	if b.verify {
		if err := solution.Verify(payoffs); err != nil {
			return errors.Wrapf(err, "verifying %v", &b.vertices[idx])
		}
	}

	verticesSolved.Add(1)
	v := &b.vertices[idx]
	v.Children = children
	v.Strategies = [2][]float64{solution.Strategy0, solution.Strategy1}
	v.VictoryProbabilities = [2]float64{solution.ExpectedValue, 1 - solution.ExpectedValue}
	return nil
}

func (b *builder) solve(payoffs [][]float64) (*matrixgame.Solution, error) {
	// A forced choice needs no solve, and keeps its payoff exact.
	if len(payoffs) == 1 && len(payoffs[0]) == 1 {
		return &matrixgame.Solution{
			ExpectedValue: payoffs[0][0],
			Strategy0:     []float64{1},
			Strategy1:     []float64{1},
		}, nil
	}

	return solveMatrixGame(payoffs)
}

// GameWinProbability returns the probability that the given player wins
// a single game in which player p plays currentDecks[p].
//
// Player 0's probability is read from the meta, and player 1's is its
// complement, so the two always sum to exactly 1.
func GameWinProbability(meta *MetaModel, currentDecks [2]int, winner Player) float64 {
	p0Wins := meta.Winrate(currentDecks[Player0], currentDecks[Player1])
	if winner == Player0 {
		return p0Wins
	}

	return 1 - p0Wins
}

func newProtectVertex(wins [2]int, remaining [2]decks.Set) Vertex {
	return Vertex{
		Kind:               Protect,
		Wins:               wins,
		DecksRemaining:     remaining,
		PreviousGameWinner: NoPlayer,
		Winner:             NoPlayer,
	}
}

func newBanVertex(wins [2]int, remaining, protected [2]decks.Set) Vertex {
	return Vertex{
		Kind:               Ban,
		Wins:               wins,
		DecksRemaining:     remaining,
		DecksProtected:     protected,
		PreviousGameWinner: NoPlayer,
		Winner:             NoPlayer,
	}
}

func newDeckChoiceVertex(wins [2]int, remaining [2]decks.Set) Vertex {
	return Vertex{
		Kind:               DeckChoice,
		Wins:               wins,
		DecksRemaining:     remaining,
		PreviousGameWinner: NoPlayer,
		Winner:             NoPlayer,
	}
}

func newDeckChoiceVertexAfterGame(wins [2]int, remaining [2]decks.Set, previousDecks [2]int, previousGameWinner Player) Vertex {
	return Vertex{
		Kind:               DeckChoice,
		Wins:               wins,
		DecksRemaining:     remaining,
		PreviousDecks:      previousDecks,
		HasPreviousDecks:   true,
		PreviousGameWinner: previousGameWinner,
		Winner:             NoPlayer,
	}
}

func newGameVertex(wins [2]int, remaining [2]decks.Set, currentDecks [2]int) Vertex {
	return Vertex{
		Kind:               Game,
		Wins:               wins,
		DecksRemaining:     remaining,
		CurrentDecks:       currentDecks,
		PreviousGameWinner: NoPlayer,
		Winner:             NoPlayer,
	}
}

func newOutcomeVertex(wins [2]int, remaining [2]decks.Set, winner Player) Vertex {
	return Vertex{
		Kind:               Outcome,
		Wins:               wins,
		DecksRemaining:     remaining,
		PreviousGameWinner: NoPlayer,
		Winner:             winner,
	}
}
